package estestx

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/segmentio/ksuid"

	"github.com/godastic/godastic/configx"
)

type bulkActionLine map[string]struct {
	Index string `json:"_index"`
	ID    string `json:"_id"`
}

func (s *Server) handleBulk(w http.ResponseWriter, r *http.Request) {
	scanner := bufio.NewScanner(r.Body)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<20)

	items := []map[string]map[string]interface{}{}
	hasErrors := false

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var action bulkActionLine
		if err := json.Unmarshal(line, &action); err != nil || len(action) != 1 {
			writeJSON(w, http.StatusBadRequest, errorBody("illegal_argument_exception", "malformed action line"))
			return
		}

		for kind, meta := range action {
			var body json.RawMessage
			if kind == "index" || kind == "update" {
				if !scanner.Scan() {
					writeJSON(w, http.StatusBadRequest, errorBody("illegal_argument_exception", "missing operation body"))
					return
				}
				body = append(body, scanner.Bytes()...)
			}

			item := s.applyBulkOperation(kind, meta.Index, meta.ID, body)
			if status, ok := item[kind]["status"].(int); ok && status >= 300 {
				hasErrors = true
			}
			items = append(items, item)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"took":   1,
		"errors": hasErrors,
		"items":  items,
	})
}

func (s *Server) applyBulkOperation(kind, index, id string, body json.RawMessage) map[string]map[string]interface{} {
	docs := s.index(index)

	item := map[string]interface{}{
		"_index": index,
		"_id":    id,
	}

	switch kind {
	case "index":
		if id == "" {
			id = ksuid.New().String()
			item["_id"] = id
		}

		result := "created"
		if _, ok := docs[id]; ok {
			result = "updated"
		}
		docs[id] = body

		item["status"] = http.StatusOK
		item["result"] = result

	case "update":
		existing, ok := docs[id]
		if !ok {
			item["status"] = http.StatusNotFound
			item["error"] = map[string]interface{}{
				"type":   "document_missing_exception",
				"reason": fmt.Sprintf("[%s]: document missing", id),
			}
			break
		}

		patched, err := applyPatch(existing, body)
		if err != nil {
			item["status"] = http.StatusBadRequest
			item["error"] = map[string]interface{}{
				"type":   "mapper_parsing_exception",
				"reason": err.Error(),
			}
			break
		}
		docs[id] = patched

		item["status"] = http.StatusOK
		item["result"] = "updated"

	case "delete":
		if _, ok := docs[id]; !ok {
			item["status"] = http.StatusNotFound
			item["result"] = "not_found"
			break
		}
		delete(docs, id)

		item["status"] = http.StatusOK
		item["result"] = "deleted"

	default:
		item["status"] = http.StatusBadRequest
		item["error"] = map[string]interface{}{
			"type":   "illegal_argument_exception",
			"reason": fmt.Sprintf("unsupported bulk action %q", kind),
		}
	}

	return map[string]map[string]interface{}{kind: item}
}

// applyPatch merges the "doc" part of a partial update into the stored
// source.
func applyPatch(existing, body json.RawMessage) (json.RawMessage, error) {
	var wrapper struct {
		Doc map[string]interface{} `json:"doc"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, err
	}

	var dst map[string]interface{}
	if err := json.Unmarshal(existing, &dst); err != nil {
		return nil, err
	}

	if err := configx.MergeAllTypes(wrapper.Doc, dst); err != nil {
		return nil, err
	}

	return json.Marshal(dst)
}
