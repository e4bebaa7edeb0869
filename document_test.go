package godastic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godastic/godastic/errorx"
	"github.com/godastic/godastic/jsonx"
	"github.com/godastic/godastic/pointerx"
)

func TestDocumentBody(t *testing.T) {
	t.Run("should exclude the id", func(t *testing.T) {
		user := &User{Name: "John"}
		user.SetID("u1")

		body, err := DocumentBody(user)
		require.NoError(t, err)
		assert.NotContains(t, body, "id")
		assert.Equal(t, "John", body["name"])
	})

	t.Run("should keep unset fields at their defaults", func(t *testing.T) {
		body, err := DocumentBody(&User{Name: "John"})
		require.NoError(t, err)

		// The stored document always reflects the full default-filled shape.
		assert.Contains(t, body, "phone")
		assert.Nil(t, body["phone"])
		assert.NotEmpty(t, body["last_login"])
	})

	t.Run("should fire default factories before serializing", func(t *testing.T) {
		user := &User{Name: "John"}
		_, err := DocumentBody(user)
		require.NoError(t, err)

		assert.False(t, user.LastLogin.IsZero())
	})

	t.Run("should compose caller excludes with the id exclusion", func(t *testing.T) {
		user := &User{Name: "John", Phone: pointerx.Ptr("555")}
		user.SetID("u1")

		body, err := DocumentBody(user, WithBodyExclude("phone"))
		require.NoError(t, err)
		assert.NotContains(t, body, "phone")
		assert.NotContains(t, body, "id")
		assert.Contains(t, body, "name")
	})

	t.Run("should never include the id even when asked to", func(t *testing.T) {
		user := &User{Name: "John"}
		user.SetID("u1")

		body, err := DocumentBody(user, WithBodyInclude("id", "name"))
		require.NoError(t, err)
		assert.NotContains(t, body, "id")
		assert.Equal(t, map[string]interface{}{"name": "John"}, body)
	})

	t.Run("should encode nested temporal values as iso text", func(t *testing.T) {
		at := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
		body, err := DocumentBody(&auditedUser{
			Name:    "John",
			History: []auditEntry{{At: at}},
		})
		require.NoError(t, err)

		entry := body["history"].([]interface{})[0].(map[string]interface{})
		encoded, ok := entry["at"].(string)
		require.True(t, ok, "temporal values must encode as text at any depth")

		parsed, err := time.Parse(time.RFC3339Nano, encoded)
		require.NoError(t, err)
		assert.True(t, parsed.Equal(at))
	})
}

type auditEntry struct {
	At time.Time `json:"at"`
}

type auditedUser struct {
	BaseModel

	Name    string       `json:"name"`
	History []auditEntry `json:"history"`
}

func (auditedUser) IndexName() string { return "audit" }

func TestModelFromHit(t *testing.T) {
	t.Run("should return nothing for an empty envelope", func(t *testing.T) {
		model, err := ModelFromHit[User](nil)
		require.NoError(t, err)
		assert.Nil(t, model)

		model, err = ModelFromHit[User](&Hit{})
		require.NoError(t, err)
		assert.Nil(t, model)
	})

	t.Run("should fail when the identity is missing", func(t *testing.T) {
		_, err := ModelFromHit[User](&Hit{Source: jsonx.RawMessage(`{"name":"John"}`)})
		require.Error(t, err)
		assert.True(t, errorx.IsInvalidResponseError(err))
	})

	t.Run("should fail when the field source is missing", func(t *testing.T) {
		_, err := ModelFromHit[User](&Hit{ID: "u1"})
		require.Error(t, err)
		assert.True(t, errorx.IsInvalidResponseError(err))
	})

	t.Run("should attach the identity from the envelope", func(t *testing.T) {
		model, err := ModelFromHit[User](&Hit{
			ID:     "u1",
			Source: jsonx.RawMessage(`{"name":"John","last_login":"2026-08-29T10:30:00Z"}`),
		})
		require.NoError(t, err)
		assert.Equal(t, "u1", model.GetID())
		assert.Equal(t, "John", model.Name)
	})
}

func TestModelsFromHits(t *testing.T) {
	t.Run("should map hits in order and skip empty ones", func(t *testing.T) {
		models, err := ModelsFromHits[User]([]Hit{
			{ID: "u1", Source: jsonx.RawMessage(`{"name":"a"}`)},
			{},
			{ID: "u2", Source: jsonx.RawMessage(`{"name":"b"}`)},
		})
		require.NoError(t, err)
		require.Len(t, models, 2)
		assert.Equal(t, "u1", models[0].GetID())
		assert.Equal(t, "u2", models[1].GetID())
	})

	t.Run("should surface an invalid envelope", func(t *testing.T) {
		_, err := ModelsFromHits[User]([]Hit{
			{ID: "u1"},
		})
		require.Error(t, err)
		assert.True(t, errorx.IsInvalidResponseError(err))
	})
}

func TestDeclaredFields(t *testing.T) {
	fields := declaredFields(&User{})

	assert.ElementsMatch(t, []string{"name", "phone", "last_login"}, fields)
	assert.NotContains(t, fields, "id")
}
