// Package godastic maps typed Go structs to documents in an Elasticsearch
// index, covering single-document lifecycle operations and batched bulk
// writes.
package godastic

// Model is implemented by any struct mapped to documents in an index.
// Embedding BaseModel provides the identity accessors; IndexName must be
// declared on the concrete type, which makes a model without a default
// index a compile-time error rather than a runtime one.
type Model interface {
	// IndexName returns the default index documents of this type live in.
	// It can be overridden per call with WithIndex.
	IndexName() string

	GetID() string
	SetID(id string)
}

// Defaulter lets a model fill default field values before serialization.
// Save and Session enqueue operations call it once per document body.
type Defaulter interface {
	SetDefaults()
}

// BaseModel carries the document identity and, on extra-tolerant reads, the
// stored fields that are not declared on the model schema.
//
// The id is never part of the document body; it travels out-of-band as the
// _id of the envelope.
type BaseModel struct {
	ID string `json:"id,omitempty"`

	ExtraFields map[string]interface{} `json:"-"`
}

func (m *BaseModel) GetID() string {
	return m.ID
}

func (m *BaseModel) SetID(id string) {
	m.ID = id
}

func (m *BaseModel) SetExtraFields(fields map[string]interface{}) {
	m.ExtraFields = fields
}

type extraFieldsCarrier interface {
	SetExtraFields(fields map[string]interface{})
}
