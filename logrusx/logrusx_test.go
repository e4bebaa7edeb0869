package logrusx

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("should emit json with the component field", func(t *testing.T) {
		var buf bytes.Buffer
		l := New("godastic", WithOutput(&buf), WithLevel(logrus.DebugLevel))

		l.WithField("index", "user").Debug("indexing document")

		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "godastic", line["component"])
		assert.Equal(t, "user", line["index"])
		assert.Equal(t, "indexing document", line["msg"])
	})

	t.Run("should not log below the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New("godastic", WithOutput(&buf), WithLevel(logrus.WarnLevel))

		l.Info("hidden")
		assert.Zero(t, buf.Len())
	})

	t.Run("should carry errors as fields", func(t *testing.T) {
		var buf bytes.Buffer
		l := New("godastic", WithOutput(&buf))

		l.WithError(assert.AnError).Error("boom")

		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, assert.AnError.Error(), line["error"])
	})
}
