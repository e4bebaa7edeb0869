package configx

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/tidwall/sjson"

	"github.com/godastic/godastic/jsonx"
)

// MergeAllTypes merges src into dst key by key, replacing values regardless
// of their json type. dst is mutated in place.
func MergeAllTypes(src, dst map[string]interface{}) error {
	rawSrc, err := json.Marshal(src)
	if err != nil {
		return errors.WithStack(err)
	}

	rawDst, err := json.Marshal(dst)
	if err != nil {
		return errors.WithStack(err)
	}

	keys := jsonx.Flatten(rawSrc)
	for key, value := range keys {
		rawDst, err = sjson.SetBytes(rawDst, key, value)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	return errors.WithStack(json.Unmarshal(rawDst, &dst))
}
