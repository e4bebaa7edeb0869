// Package estestx provides an in-memory stand-in for an Elasticsearch
// server, speaking just enough of the document and bulk APIs for tests to
// drive a real client against it without a cluster.
package estestx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/segmentio/ksuid"
)

// Server is an httptest-backed document store double. It keeps documents as
// raw json sources per index and counts every handled request, so tests can
// assert that validation errors never reach the wire.
type Server struct {
	mu      sync.Mutex
	indices map[string]map[string]json.RawMessage
	handled int

	httpServer *httptest.Server
}

func NewServer() *Server {
	s := &Server{
		indices: map[string]map[string]json.RawMessage{},
	}
	s.httpServer = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

func (s *Server) URL() string {
	return s.httpServer.URL
}

func (s *Server) Close() {
	s.httpServer.Close()
}

// Handled returns the number of requests the server has seen.
func (s *Server) Handled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handled
}

// Put seeds a document without going through the API.
func (s *Server) Put(index, id string, source json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index(index)[id] = source
}

// Source returns the stored source of a document.
func (s *Server) Source(index, id string) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.index(index)[id]
	return src, ok
}

// Count returns the number of documents in an index.
func (s *Server) Count(index string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.index(index))
}

// index returns the live document map for a name. Callers must hold mu.
func (s *Server) index(name string) map[string]json.RawMessage {
	if _, ok := s.indices[name]; !ok {
		s.indices[name] = map[string]json.RawMessage{}
	}
	return s.indices[name]
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handled++

	// The v8 client refuses to talk to anything that does not identify
	// itself as Elasticsearch.
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(r.URL.Path, "/")

	switch {
	case path == "":
		w.WriteHeader(http.StatusOK)

	case path == "_bulk" && r.Method == http.MethodPost:
		s.handleBulk(w, r)

	default:
		parts := strings.Split(path, "/")
		if len(parts) < 2 || parts[1] != "_doc" {
			writeJSON(w, http.StatusBadRequest, errorBody("illegal_argument_exception", fmt.Sprintf("unsupported path %q", r.URL.Path)))
			return
		}

		index := parts[0]
		id := ""
		if len(parts) > 2 {
			id = parts[2]
		}
		s.handleDocument(w, r, index, id)
	}
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request, index, id string) {
	docs := s.index(index)

	switch r.Method {
	case http.MethodHead:
		if _, ok := docs[id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)

	case http.MethodGet:
		src, ok := docs[id]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"_index": index,
				"_id":    id,
				"found":  false,
			})
			return
		}

		if includes := r.URL.Query().Get("_source_includes"); includes != "" {
			src = projectSource(src, strings.Split(includes, ","))
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"_index":  index,
			"_id":     id,
			"found":   true,
			"_source": src,
		})

	case http.MethodPut, http.MethodPost:
		if id == "" {
			id = ksuid.New().String()
		}

		body, err := readSource(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("mapper_parsing_exception", err.Error()))
			return
		}

		result := "created"
		if _, ok := docs[id]; ok {
			result = "updated"
		}
		docs[id] = body

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"_index": index,
			"_id":    id,
			"result": result,
		})

	case http.MethodDelete:
		if _, ok := docs[id]; !ok {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"_index": index,
				"_id":    id,
				"result": "not_found",
			})
			return
		}
		delete(docs, id)

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"_index": index,
			"_id":    id,
			"result": "deleted",
		})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func readSource(r *http.Request) (json.RawMessage, error) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}
	return json.Marshal(body)
}

func projectSource(src json.RawMessage, fields []string) json.RawMessage {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(src, &all); err != nil {
		return src
	}

	projected := map[string]json.RawMessage{}
	for _, f := range fields {
		if v, ok := all[f]; ok {
			projected[f] = v
		}
	}

	out, err := json.Marshal(projected)
	if err != nil {
		return src
	}
	return out
}

func errorBody(errType, reason string) map[string]interface{} {
	return map[string]interface{}{
		"error": map[string]interface{}{
			"type":   errType,
			"reason": reason,
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
