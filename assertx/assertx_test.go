package assertx

import (
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	type payload struct {
		Name string
		Seen int
	}

	val := Equal(t, payload{Name: "a", Seen: 1}, payload{Name: "a", Seen: 2}, cmpopts.IgnoreFields(payload{}, "Seen"))
	require.True(t, val)
}

func TestEqualAsJSON(t *testing.T) {
	a := map[string]interface{}{"foo": "bar", "n": 1}
	b := struct {
		Foo string `json:"foo"`
		N   int    `json:"n"`
	}{Foo: "bar", N: 1}

	require.True(t, EqualAsJSON(t, a, b))
}

func TestEqualAsJSONExcept(t *testing.T) {
	a := map[string]interface{}{"foo": "bar", "baz": "bar", "bar": "baz"}
	b := map[string]interface{}{"foo": "bar", "baz": "bar", "bar": "not-baz"}

	val := EqualAsJSONExcept(t, a, b, []string{"bar"})
	require.True(t, val)
}
