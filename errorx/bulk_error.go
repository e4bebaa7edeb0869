package errorx

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// BulkItemError describes the failure of a single operation inside a bulk
// request. Items keep the order in which the operations were submitted.
type BulkItemError struct {
	Index      string `json:"index"`
	DocumentID string `json:"documentId,omitempty"`
	Action     string `json:"action"`
	Type       string `json:"type"`
	Reason     string `json:"reason"`
}

func (e BulkItemError) Error() string {
	return fmt.Sprintf("%s %s/%s: [%s] %s", e.Action, e.Index, e.DocumentID, e.Type, e.Reason)
}

// BulkError aggregates every failed item of one bulk request. It is only
// returned once the full per-item result set has been drained, so Items is
// always the complete failure list, never a prefix.
type BulkError struct {
	Items []BulkItemError
}

var _ error = (*BulkError)(nil)

func NewBulkError(items []BulkItemError) *BulkError {
	return &BulkError{Items: items}
}

func (e *BulkError) Error() string {
	reasons := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		reasons = append(reasons, item.Error())
	}

	return fmt.Sprintf("[%s] %d operation(s) failed: %s", ErrorTypeBulk, len(e.Items), strings.Join(reasons, "; "))
}

// IsBulkError reports whether e (or its cause) is a bulk aggregate error.
func IsBulkError(e error) (*BulkError, bool) {
	e = errors.Cause(e)
	mE, ok := e.(*BulkError)
	if !ok {
		return nil, false
	}

	return mE, true
}
