package godastic

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/samber/lo"

	"github.com/godastic/godastic/errorx"
)

const idField = "id"

type bodyOptions struct {
	include map[string]struct{}
	exclude map[string]struct{}
}

type BodyOption func(*bodyOptions)

// WithBodyExclude drops the given declared fields from the document body.
// The id field is always excluded, whether listed or not.
func WithBodyExclude(fields ...string) BodyOption {
	return func(o *bodyOptions) {
		for f, v := range lo.SliceToMap(fields, func(f string) (string, struct{}) { return f, struct{}{} }) {
			o.exclude[f] = v
		}
	}
}

// WithBodyInclude restricts the document body to the given fields. The id
// field stays excluded even when listed.
func WithBodyInclude(fields ...string) BodyOption {
	return func(o *bodyOptions) {
		for f, v := range lo.SliceToMap(fields, func(f string) (string, struct{}) { return f, struct{}{} }) {
			o.include[f] = v
		}
	}
}

// DocumentBody serializes the model into the mapping stored as the
// document's _source. The id is excluded, unset fields keep their default
// values (the stored document always reflects the full default-filled
// shape), and temporal values encode as RFC 3339 text at any nesting depth
// through the json round trip.
func DocumentBody(m Model, opts ...BodyOption) (map[string]interface{}, error) {
	o := &bodyOptions{
		include: map[string]struct{}{},
		exclude: map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(o)
	}

	if d, ok := m.(Defaulter); ok {
		d.SetDefaults()
	}

	raw, err := json.Marshal(m)
	if err != nil {
		return nil, errorx.InvalidModelErrorf("model is not serializable: %s", err)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, errorx.InvalidModelErrorf("model does not serialize to an object: %s", err)
	}

	delete(body, idField)

	if len(o.include) > 0 {
		for k := range body {
			if _, ok := o.include[k]; !ok {
				delete(body, k)
			}
		}
	}

	for k := range o.exclude {
		delete(body, k)
	}

	return body, nil
}

// ModelFromHit constructs a model from a store envelope. An empty envelope
// yields a nil model and no error; an envelope missing its identity or its
// field source fails with an InvalidResponse error.
func ModelFromHit[T any, PT interface {
	*T
	Model
}](hit *Hit) (PT, error) {
	if hit == nil || (hit.ID == "" && len(hit.Source) == 0) {
		return nil, nil
	}

	if hit.ID == "" || len(hit.Source) == 0 {
		return nil, errorx.InvalidResponseErrorf("document envelope is missing _id or _source")
	}

	model := PT(new(T))
	if err := populateModel(model, hit.Source, false); err != nil {
		return nil, err
	}
	model.SetID(hit.ID)

	return model, nil
}

// ModelsFromHits maps a sequence of envelopes, e.g. the hits of a search
// response, onto models. Empty envelopes are skipped.
func ModelsFromHits[T any, PT interface {
	*T
	Model
}](hits []Hit) ([]PT, error) {
	models := make([]PT, 0, len(hits))
	for i := range hits {
		model, err := ModelFromHit[T, PT](&hits[i])
		if err != nil {
			return nil, err
		}
		if model == nil {
			continue
		}
		models = append(models, model)
	}

	return models, nil
}

func populateModel(m Model, source json.RawMessage, extraFields bool) error {
	if err := json.Unmarshal(source, m); err != nil {
		return errorx.InvalidResponseErrorf("document source does not match model: %s", err)
	}

	if !extraFields {
		return nil
	}

	var all map[string]interface{}
	if err := json.Unmarshal(source, &all); err != nil {
		return errorx.InvalidResponseErrorf("document source is not an object: %s", err)
	}

	for _, f := range declaredFields(m) {
		delete(all, f)
	}
	delete(all, idField)

	if carrier, ok := m.(extraFieldsCarrier); ok && len(all) > 0 {
		carrier.SetExtraFields(all)
	}

	return nil
}

// declaredFields returns the json field names declared on the model struct,
// id excluded. Used as the _source projection for schema-bound reads.
func declaredFields(m Model) []string {
	var fields []string
	collectFields(reflect.TypeOf(m), &fields)

	return lo.Filter(fields, func(f string, _ int) bool {
		return f != idField
	})
}

func collectFields(t reflect.Type, out *[]string) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			collectFields(f.Type, out)
			continue
		}
		if !f.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}

		*out = append(*out, name)
	}
}
