package godastic

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	godasticbulk "github.com/godastic/godastic/bulk"
	"github.com/godastic/godastic/errorx"
	"github.com/godastic/godastic/logrusx"
)

// operation is one queued bulk action. Bodies are serialized eagerly at
// enqueue time, so a model mutated afterwards does not change what commit
// submits.
type operation struct {
	action godasticbulk.Action
	index  string
	id     string
	body   map[string]interface{}
}

// Session accumulates save/update/delete operations and submits them as a
// single bulk request. A session instance is owned by one logical caller at
// a time; concurrent enqueues require external synchronization. After a
// commit the session is empty and reusable.
type Session struct {
	queue  []operation
	conn   *Connection
	logger *logrusx.Logger
}

type SessionOption func(*Session)

// WithSessionConnection commits through an explicit connection instead of
// the process-wide default.
func WithSessionConnection(c *Connection) SessionOption {
	return func(s *Session) {
		s.conn = c
	}
}

func WithSessionLogger(l *logrusx.Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		logger: logrusx.New("godastic.session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save enqueues an index operation: create-or-replace when the model has an
// id, store-assigned identity when it does not. Unlike the single-document
// Save, a store-assigned id is not written back onto the model after
// commit; callers that need the identity should set it up front.
func (s *Session) Save(m Model, opts ...DocumentOption) error {
	o := newDocumentOptions(opts)

	index, err := resolveIndex(m, o.index)
	if err != nil {
		return err
	}

	body, err := DocumentBody(m)
	if err != nil {
		return err
	}

	s.queue = append(s.queue, operation{
		action: godasticbulk.ActionIndex,
		index:  index,
		id:     m.GetID(),
		body:   body,
	})

	return nil
}

// Update enqueues a partial-patch update of an already persisted document.
// A model without an id fails with InvalidModel immediately, leaving the
// queue untouched.
func (s *Session) Update(m Model, opts ...DocumentOption) error {
	if m.GetID() == "" {
		return errorx.InvalidModelErrorf("model must have an id to be updated")
	}

	o := newDocumentOptions(opts)

	index, err := resolveIndex(m, o.index)
	if err != nil {
		return err
	}

	body, err := DocumentBody(m)
	if err != nil {
		return err
	}

	s.queue = append(s.queue, operation{
		action: godasticbulk.ActionUpdate,
		index:  index,
		id:     m.GetID(),
		body:   body,
	})

	return nil
}

// Delete enqueues the removal of an already persisted document. A model
// without an id fails with InvalidModel immediately, leaving the queue
// untouched.
func (s *Session) Delete(m Model, opts ...DocumentOption) error {
	if m.GetID() == "" {
		return errorx.InvalidModelErrorf("model must have an id to be deleted")
	}

	o := newDocumentOptions(opts)

	index, err := resolveIndex(m, o.index)
	if err != nil {
		return err
	}

	s.queue = append(s.queue, operation{
		action: godasticbulk.ActionDelete,
		index:  index,
		id:     m.GetID(),
	})

	return nil
}

// Len returns the number of queued operations.
func (s *Session) Len() int {
	return len(s.queue)
}

// Clear drops all queued operations without submitting them.
func (s *Session) Clear() {
	s.queue = nil
}

type commitOptions struct {
	bulkOptions   []godasticbulk.Option
	collectErrors bool
}

type CommitOption func(*commitOptions)

// WithBulkOptions forwards options to the underlying bulk request.
func WithBulkOptions(opts ...godasticbulk.Option) CommitOption {
	return func(o *commitOptions) {
		o.bulkOptions = append(o.bulkOptions, opts...)
	}
}

// WithCollectErrors makes Commit report per-item failures only through the
// returned slice instead of also failing with an aggregate BulkError.
func WithCollectErrors() CommitOption {
	return func(o *commitOptions) {
		o.collectErrors = true
	}
}

// Commit submits all queued operations as one bulk request, in enqueue
// order, then clears the queue unconditionally; failed items are not
// retried or re-queued. The full per-item result set is drained before
// deciding the outcome: every failure is reported, never just the first.
// By default any failed item makes Commit return an *errorx.BulkError
// aggregating all of them alongside the failure slice; with
// WithCollectErrors the slice alone is returned. An empty session commits
// as a no-op without any store call.
func (s *Session) Commit(ctx context.Context, opts ...CommitOption) ([]errorx.BulkItemError, error) {
	o := &commitOptions{}
	for _, opt := range opts {
		opt(o)
	}

	ops := s.queue
	s.queue = nil

	if len(ops) == 0 {
		return nil, nil
	}

	conn := s.conn
	if conn == nil {
		var err error
		conn, err = DefaultConnection()
		if err != nil {
			return nil, err
		}
	}

	body, err := encodeOperations(ops)
	if err != nil {
		return nil, err
	}

	req := esapi.BulkRequest{
		Body: body,
	}
	for _, opt := range o.bulkOptions {
		opt(&req)
	}

	res, err := req.Do(ctx, conn.es)
	if err != nil {
		return nil, err
	}

	defer res.Body.Close()

	if res.IsError() {
		return nil, withElasticError(res)
	}

	var resp bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, errorx.InvalidResponseErrorf("bulk response is not decodable: %s", err)
	}

	if len(resp.Items) != len(ops) {
		return nil, errorx.InvalidResponseErrorf("bulk response has %d items for %d operations", len(resp.Items), len(ops))
	}

	failures := reconcile(ops, resp.Items)

	s.logger.WithFields(logrus.Fields{
		"took":       resp.Took,
		"operations": len(ops),
		"failed":     len(failures),
	}).Debug("committed bulk request")

	if len(failures) > 0 && !o.collectErrors {
		return failures, errorx.NewBulkError(failures)
	}

	return failures, nil
}

// encodeOperations renders the newline-delimited action/body lines of a
// bulk request. Update bodies are nested under "doc" so the store applies
// them as a partial patch instead of a full replace.
func encodeOperations(ops []operation) (*bytes.Buffer, error) {
	type actionMeta struct {
		Index string `json:"_index"`
		ID    string `json:"_id,omitempty"`
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	for _, op := range ops {
		if err := enc.Encode(map[string]actionMeta{
			op.action.String(): {Index: op.index, ID: op.id},
		}); err != nil {
			return nil, err
		}

		switch op.action {
		case godasticbulk.ActionIndex:
			if err := enc.Encode(op.body); err != nil {
				return nil, err
			}
		case godasticbulk.ActionUpdate:
			if err := enc.Encode(map[string]interface{}{"doc": op.body}); err != nil {
				return nil, err
			}
		case godasticbulk.ActionDelete:
			// no body line
		}
	}

	return &buf, nil
}

// reconcile pairs the ordered per-item results with the submitted
// operations and collects the failed ones. An item counts as failed on any
// non-2xx status, matching how a delete of a missing document reports
// without an error object.
func reconcile(ops []operation, items []map[string]bulkResponseItem) []errorx.BulkItemError {
	failures := []errorx.BulkItemError{}

	for i, wrapper := range items {
		op := ops[i]

		item, ok := wrapper[op.action.String()]
		if !ok {
			// Take whatever single action key the store echoed back.
			for _, v := range wrapper {
				item = v
			}
		}

		if item.Status >= 200 && item.Status < 300 {
			continue
		}

		failure := errorx.BulkItemError{
			Index:      lo.CoalesceOrEmpty(item.Index, op.index),
			DocumentID: lo.CoalesceOrEmpty(item.ID, op.id),
			Action:     op.action.String(),
		}
		if item.Error != nil {
			failure.Type = item.Error.Type
			failure.Reason = item.Error.Reason
		} else {
			failure.Type = item.Result
			failure.Reason = item.Result
		}

		failures = append(failures, failure)
	}

	return failures
}

// WithSession runs fn against a fresh session and commits it on success.
// Whatever happens inside fn, the queue does not outlive the scope: on
// error the pending operations are cleared, never left half-built for
// unrelated code to flush.
func WithSession(ctx context.Context, fn func(s *Session) error, opts ...SessionOption) error {
	s := NewSession(opts...)
	defer s.Clear()

	if err := fn(s); err != nil {
		return err
	}

	_, err := s.Commit(ctx)
	return err
}
