package errorx

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkError(t *testing.T) {
	items := []BulkItemError{
		{Index: "user", DocumentID: "u1", Action: "update", Type: "document_missing_exception", Reason: "[u1]: document missing"},
		{Index: "user", DocumentID: "u2", Action: "update", Type: "document_missing_exception", Reason: "[u2]: document missing"},
	}

	t.Run("should carry the full item list", func(t *testing.T) {
		err := NewBulkError(items)
		assert.Len(t, err.Items, 2)
		assert.Equal(t, "u1", err.Items[0].DocumentID)
		assert.Equal(t, "u2", err.Items[1].DocumentID)
	})

	t.Run("should report the failure count in the message", func(t *testing.T) {
		err := NewBulkError(items)
		assert.Contains(t, err.Error(), "[BULK] 2 operation(s) failed")
		assert.Contains(t, err.Error(), "update user/u1")
	})

	t.Run("should be matched through a stack", func(t *testing.T) {
		err := errors.WithStack(NewBulkError(items))

		bErr, ok := IsBulkError(err)
		require.True(t, ok)
		assert.Len(t, bErr.Items, 2)
	})

	t.Run("should not match plain errors", func(t *testing.T) {
		_, ok := IsBulkError(errors.New("boom"))
		assert.False(t, ok)
	})
}
