package godastic

import "encoding/json"

// Hit is the store envelope for a single document: identity out-of-band,
// fields in _source.
type Hit struct {
	Index  string          `json:"_index,omitempty"`
	ID     string          `json:"_id"`
	Found  bool            `json:"found,omitempty"`
	Source json.RawMessage `json:"_source"`
}

type documentMeta struct {
	Index   string `json:"_index"`
	ID      string `json:"_id"`
	Version int    `json:"_version"`
	Result  string `json:"result"`
}

type bulkResponse struct {
	Took   int                           `json:"took"`
	Errors bool                          `json:"errors"`
	Items  []map[string]bulkResponseItem `json:"items"`
}

type bulkResponseItem struct {
	Index  string `json:"_index"`
	ID     string `json:"_id"`
	Status int    `json:"status"`
	Result string `json:"result"`
	Error  *struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error,omitempty"`
}

type errorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}
