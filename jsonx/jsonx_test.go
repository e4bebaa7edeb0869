package jsonx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawMessage(t *testing.T) {
	t.Run("should normalize an indented json string", func(t *testing.T) {
		raw := RawMessage(`{
			"foo": "bar"
		}`)

		assert.Equal(t, json.RawMessage(`{"foo":"bar"}`), raw)
	})

	t.Run("should panic on invalid json", func(t *testing.T) {
		assert.Panics(t, func() {
			RawMessage(`{"foo":`)
		})
	})
}

func TestFlatten(t *testing.T) {
	t.Run("should flatten nested objects into dotted keys", func(t *testing.T) {
		keys := Flatten(RawMessage(`{"a": {"b": 1, "c": {"d": "x"}}, "e": true}`))

		assert.Equal(t, map[string]interface{}{
			"a.b":   float64(1),
			"a.c.d": "x",
			"e":     true,
		}, keys)
	})

	t.Run("should treat arrays as leaves", func(t *testing.T) {
		keys := Flatten(RawMessage(`{"a": [1, 2]}`))

		assert.Len(t, keys, 1)
		assert.Contains(t, keys, "a")
	})
}
