package godastic

import (
	"context"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/godastic/godastic/errorx"
)

// Delete removes the model's document. A model without an id fails with
// FailedPrecondition before any request is made; a missing document fails
// with NotFound. The model's identity is left untouched on success.
func Delete(ctx context.Context, m Model, opts ...DocumentOption) error {
	if m.GetID() == "" {
		return errorx.FailedPreconditionErrorf("id missing from model")
	}

	o := newDocumentOptions(opts)

	conn, err := o.connection()
	if err != nil {
		return err
	}

	index, err := resolveIndex(m, o.index)
	if err != nil {
		return err
	}

	res, err := esapi.DeleteRequest{
		Index:      index,
		DocumentID: m.GetID(),
		Refresh:    o.refreshValue(),
	}.Do(ctx, conn.es)
	if err != nil {
		return err
	}

	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return errorx.NotFoundErrorf("document with id %q not found in index %q", m.GetID(), index)
	}

	if res.IsError() {
		return withElasticError(res)
	}

	conn.logger.WithField("index", index).WithField("id", m.GetID()).Debug("deleted document")

	return nil
}
