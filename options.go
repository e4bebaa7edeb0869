package godastic

import (
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/refresh"

	"github.com/godastic/godastic/errorx"
)

type documentOptions struct {
	conn        *Connection
	index       string
	refresh     refresh.Refresh
	generateID  bool
	extraFields bool
}

type DocumentOption func(*documentOptions)

// WithConnection runs the operation against an explicit connection instead
// of the process-wide default.
func WithConnection(c *Connection) DocumentOption {
	return func(o *documentOptions) {
		o.conn = c
	}
}

// WithIndex overrides the model type's default index for this operation.
func WithIndex(name string) DocumentOption {
	return func(o *documentOptions) {
		o.index = name
	}
}

// WithRefresh sets the refresh behavior of the write.
func WithRefresh(r refresh.Refresh) DocumentOption {
	return func(o *documentOptions) {
		o.refresh = r
	}
}

// WithWaitFor makes the write wait until it is visible to subsequent reads
// before returning. Useful for deterministic tests; trades latency for
// read-your-write consistency.
func WithWaitFor() DocumentOption {
	return func(o *documentOptions) {
		o.refresh = refresh.Waitfor
	}
}

// WithGeneratedID assigns a client-side ksuid to a model saved without an
// id, instead of letting the store pick one.
func WithGeneratedID() DocumentOption {
	return func(o *documentOptions) {
		o.generateID = true
	}
}

// WithExtraFields retrieves all stored fields, not only the ones declared
// on the model; undeclared fields land in BaseModel.ExtraFields.
func WithExtraFields() DocumentOption {
	return func(o *documentOptions) {
		o.extraFields = true
	}
}

func newDocumentOptions(opts []DocumentOption) *documentOptions {
	o := &documentOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *documentOptions) connection() (*Connection, error) {
	if o.conn != nil {
		return o.conn, nil
	}
	return DefaultConnection()
}

func (o *documentOptions) refreshValue() string {
	return o.refresh.String()
}

// resolveIndex picks the explicit per-call index when given, else the model
// type's default.
func resolveIndex(m Model, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	name := m.IndexName()
	if name == "" {
		return "", errorx.InvalidModelErrorf("model declares an empty index name")
	}

	return name, nil
}
