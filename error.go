package godastic

import (
	"encoding/json"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/godastic/godastic/errorx"
)

// withElasticError translates an elasticsearch error response into a typed
// domain error. 404s become NotFound; everything else surfaces as an
// internal error carrying the server-reported type and reason.
func withElasticError(res *esapi.Response) error {
	var er errorResponse
	if err := json.NewDecoder(res.Body).Decode(&er); err != nil || er.Error.Type == "" {
		if res.StatusCode == http.StatusNotFound {
			return errorx.NotFoundErrorf("document not found")
		}
		return errorx.InternalErrorf("elasticsearch error: %s", res.Status())
	}

	if res.StatusCode == http.StatusNotFound {
		return errorx.NotFoundErrorf("%s: %s", er.Error.Type, er.Error.Reason)
	}

	return errorx.InternalErrorf("%s: %s", er.Error.Type, er.Error.Reason)
}
