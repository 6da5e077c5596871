package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"viz-proxy/api/internal/store"
	"viz-proxy/api/internal/viz"
)

type ChartsRequest struct {
	ProcessRequest
	SessionID string `json:"session_id,omitempty"`
}

type ChartsResponse struct {
	Status struct {
		IsValid bool   `json:"isValid"`
		Title   string `json:"title,omitempty"`
		Source  string `json:"source,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"status"`
	Result viz.Result `json:"result"`
}

// chartGetter is the read side of the Postgres projection repo, with row
// freshness enforced; memGetter is the read side of the in-process cache.
type chartGetter interface {
	Get(ctx context.Context, key string, maxAge time.Duration) (json.RawMessage, error)
}

type memGetter interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool)
}

const chartMaxAge = 24 * time.Hour

// Charts runs the full pipeline on POST and persists every chart projection
// under the request's session. GET serves one cached projection back.
func (h *Handle) Charts(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.cachedChart(w, r)
		return
	}
	var req ChartsRequest
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "GET or POST only"})
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json: " + err.Error()})
		return
	}
	if len(req.UserQuery) > maxQueryLen || len(req.Response) > maxResponseLen {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "input too long"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = "default"
	}

	kv := h.stores(req.SessionID)
	res, err := h.eng.ProcessAndPersist(r.Context(), req.Response, req.UserQuery, kv)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "persist error: " + err.Error()})
		return
	}

	var out ChartsResponse
	out.Result = res
	out.Status.IsValid = !res.IsInvalid
	out.Status.Title = res.Title
	out.Status.Source = res.Source
	out.Status.Message = res.Message
	writeJSON(w, http.StatusOK, out)
}

func (h *Handle) cachedChart(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = "default"
	}
	chart := r.URL.Query().Get("chart")
	if chart == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "chart parameter is required"})
		return
	}

	var js json.RawMessage
	switch g := h.stores(sessionID).(type) {
	case chartGetter:
		var err error
		js, err = g.Get(r.Context(), chart, chartMaxAge)
		if err != nil {
			code := http.StatusBadGateway
			if errors.Is(err, store.ErrNotFound) {
				code = http.StatusNotFound
			}
			writeJSON(w, code, map[string]string{"error": "chart not cached: " + err.Error()})
			return
		}
	case memGetter:
		var ok bool
		js, ok = g.Get(r.Context(), chart)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "chart not cached"})
			return
		}
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no readable chart cache configured"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(js)
}

// Recommend ranks chart families for a query/response pair.
func (h *Handle) Recommend(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequest
	if !req.decode(w, r) {
		return
	}
	var text string
	if err := json.Unmarshal(req.Response, &text); err != nil {
		text = string(req.Response)
	}
	writeJSON(w, http.StatusOK, viz.Recommend(req.UserQuery, text))
}
