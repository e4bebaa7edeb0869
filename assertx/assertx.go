package assertx

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/sjson"
)

type tHelper interface {
	Helper()
}

func PrettifyJSONPayload(t require.TestingT, payload interface{}) string {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	o, err := json.MarshalIndent(payload, "", "  ")
	require.NoError(t, err)
	return string(o)
}

// EqualAsJSON asserts that expected and actual encode to the same json
// document, regardless of the in-memory representation.
func EqualAsJSON(t require.TestingT, expected, actual interface{}, args ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	var eb, ab bytes.Buffer
	if len(args) == 0 {
		args = []interface{}{PrettifyJSONPayload(t, actual)}
	}

	require.NoError(t, json.NewEncoder(&eb).Encode(expected), args...)
	require.NoError(t, json.NewEncoder(&ab).Encode(actual), args...)
	return assert.JSONEq(t, strings.TrimSpace(eb.String()), strings.TrimSpace(ab.String()), args...)
}

// EqualAsJSONExcept is like EqualAsJSON but ignores the given top-level or
// dotted keys on both sides.
func EqualAsJSONExcept(t require.TestingT, expected, actual interface{}, except []string, args ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	var eb, ab bytes.Buffer
	if len(args) == 0 {
		args = []interface{}{PrettifyJSONPayload(t, actual)}
	}

	require.NoError(t, json.NewEncoder(&eb).Encode(expected), args...)
	require.NoError(t, json.NewEncoder(&ab).Encode(actual), args...)

	var err error
	ebs, abs := eb.String(), ab.String()
	for _, k := range except {
		ebs, err = sjson.Delete(ebs, k)
		require.NoError(t, err)

		abs, err = sjson.Delete(abs, k)
		require.NoError(t, err)
	}

	return assert.JSONEq(t, strings.TrimSpace(ebs), strings.TrimSpace(abs), args...)
}
