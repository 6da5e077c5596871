package handle

import (
	"encoding/json"
	"net/http"

	"viz-proxy/api/internal/engine"
)

// Input length limits, matching what the front end enforces.
const (
	maxQueryLen    = 1000
	maxResponseLen = 5000
)

// StoreFactory builds the KeyValueStore a charts request persists into; the
// session ID scopes cache rows per conversation.
type StoreFactory func(sessionID string) engine.KeyValueStore

type Handle struct {
	eng    *engine.Engine
	stores StoreFactory
}

func New(eng *engine.Engine, stores StoreFactory) *Handle {
	return &Handle{eng: eng, stores: stores}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
