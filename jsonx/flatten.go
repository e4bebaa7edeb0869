package jsonx

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Flatten turns a nested json document into a map of dotted keys to leaf
// values. Arrays are treated as leaves.
func Flatten(raw json.RawMessage) map[string]interface{} {
	out := map[string]interface{}{}
	flattenInto("", gjson.ParseBytes(raw), out)
	return out
}

func flattenInto(prefix string, v gjson.Result, out map[string]interface{}) {
	if v.IsObject() {
		v.ForEach(func(k, val gjson.Result) bool {
			key := k.String()
			if prefix != "" {
				key = prefix + "." + key
			}
			flattenInto(key, val, out)
			return true
		})
		return
	}

	if prefix == "" {
		return
	}

	out[prefix] = v.Value()
}
