package godastic

import (
	"context"
	"encoding/json"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/segmentio/ksuid"
)

// Save indexes the model's document. A model with an id is created or
// replaced at that identity; without one the store assigns an id, which is
// written back onto the model. The assigned id is returned either way.
func Save(ctx context.Context, m Model, opts ...DocumentOption) (string, error) {
	o := newDocumentOptions(opts)

	conn, err := o.connection()
	if err != nil {
		return "", err
	}

	index, err := resolveIndex(m, o.index)
	if err != nil {
		return "", err
	}

	body, err := DocumentBody(m)
	if err != nil {
		return "", err
	}

	documentID := m.GetID()
	if documentID == "" && o.generateID {
		documentID = ksuid.New().String()
	}

	res, err := esapi.IndexRequest{
		Index:      index,
		DocumentID: documentID,
		Refresh:    o.refreshValue(),
		Body:       esutil.NewJSONReader(body),
	}.Do(ctx, conn.es)
	if err != nil {
		return "", err
	}

	defer res.Body.Close()

	if res.IsError() {
		return "", withElasticError(res)
	}

	var meta documentMeta
	if err := json.NewDecoder(res.Body).Decode(&meta); err != nil {
		return "", err
	}

	// The id is only written back once the store acknowledged the write, so
	// a failed save never leaves a half-updated model behind.
	m.SetID(meta.ID)

	conn.logger.WithField("index", index).WithField("id", meta.ID).Debug("saved document")

	return meta.ID, nil
}
