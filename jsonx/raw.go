package jsonx

import "encoding/json"

// RawMessage returns a normalized json.RawMessage.
// This is useful for comparing json payloads in tests.
// The function will panic if the input is not valid json.
// It normalizes the json by unmarshaling and marshaling it again.
func RawMessage(in string) json.RawMessage {
	var v interface{}
	err := json.Unmarshal([]byte(in), &v)
	if err != nil {
		panic(err)
	}

	out, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	return out
}
