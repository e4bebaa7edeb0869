package godastic

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/godastic/godastic/errorx"
)

// Get fetches the document with the given id and returns a model populated
// from it. Unless WithExtraFields is given, the store is asked to project
// only the fields declared on the model; undeclared stored fields are
// dropped, never an error. A missing document fails with NotFound.
func Get[T any, PT interface {
	*T
	Model
}](ctx context.Context, id string, opts ...DocumentOption) (PT, error) {
	o := newDocumentOptions(opts)

	conn, err := o.connection()
	if err != nil {
		return nil, err
	}

	model := PT(new(T))

	index, err := resolveIndex(model, o.index)
	if err != nil {
		return nil, err
	}

	req := esapi.GetRequest{
		Index:      index,
		DocumentID: id,
	}
	if !o.extraFields {
		req.SourceIncludes = declaredFields(model)
	}

	res, err := req.Do(ctx, conn.es)
	if err != nil {
		return nil, err
	}

	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, errorx.NotFoundErrorf("document with id %q not found in index %q", id, index)
	}

	if res.IsError() {
		return nil, withElasticError(res)
	}

	var hit Hit
	if err := json.NewDecoder(res.Body).Decode(&hit); err != nil {
		return nil, errorx.InvalidResponseErrorf("document envelope is not decodable: %s", err)
	}

	if hit.ID == "" || len(hit.Source) == 0 {
		return nil, errorx.InvalidResponseErrorf("document envelope is missing _id or _source")
	}

	if err := populateModel(model, hit.Source, o.extraFields); err != nil {
		return nil, err
	}
	model.SetID(hit.ID)

	return model, nil
}

// Exists checks whether a document with the given id exists, without
// fetching its source.
func Exists[T any, PT interface {
	*T
	Model
}](ctx context.Context, id string, opts ...DocumentOption) (bool, error) {
	o := newDocumentOptions(opts)

	conn, err := o.connection()
	if err != nil {
		return false, err
	}

	index, err := resolveIndex(PT(new(T)), o.index)
	if err != nil {
		return false, err
	}

	res, err := esapi.ExistsRequest{
		Index:      index,
		DocumentID: id,
	}.Do(ctx, conn.es)
	if err != nil {
		return false, err
	}

	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	}

	return false, withElasticError(res)
}
