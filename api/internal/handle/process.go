package handle

import (
	"encoding/json"
	"net/http"

	"viz-proxy/api/internal/viz"
)

type ProcessRequest struct {
	UserQuery string          `json:"user_query"`
	Response  json.RawMessage `json:"response"`
}

// decode validates method, body and length limits shared by the POST routes.
func (req *ProcessRequest) decode(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST only"})
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json: " + err.Error()})
		return false
	}
	if len(req.UserQuery) > maxQueryLen {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query too long"})
		return false
	}
	if len(req.Response) > maxResponseLen {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "response too long"})
		return false
	}
	if len(req.Response) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing user_query or response"})
		return false
	}
	return true
}

// Process classifies the raw response and returns the canonical result.
func (h *Handle) Process(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequest
	if !req.decode(w, r) {
		return
	}
	res := h.eng.Process(req.Response, req.UserQuery)
	writeJSON(w, http.StatusOK, res)
}

// Colors returns the fixed palette for a result source.
func (h *Handle) Colors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "GET only"})
		return
	}
	source := r.URL.Query().Get("source")
	writeJSON(w, http.StatusOK, map[string]any{
		"source": source,
		"colors": viz.ColorScheme(source),
	})
}
