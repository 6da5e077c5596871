// Package engine ties classification and projection together: one Process
// call normalizes the upstream value, ProcessAndPersist fans the result out
// through every chart projector into a keyed store.
package engine

import (
	"context"
	"fmt"

	"viz-proxy/api/internal/viz"
	"viz-proxy/api/internal/viz/project"
)

// KeyValueStore is the persistence boundary. Implementations are injected;
// nothing inside the extractors or projectors ever touches a store.
type KeyValueStore interface {
	Set(ctx context.Context, key string, value any) error
}

// StatusKey is the store key of the per-run status record.
const StatusKey = "Status"

// ChartPayload is what gets stored under each chart-type key.
type ChartPayload struct {
	Data   any    `json:"data"`
	Title  string `json:"title"`
	Source string `json:"source"`
}

// Status summarizes a persist run for the UI to branch on.
type Status struct {
	IsValid bool   `json:"isValid"`
	Title   string `json:"title,omitempty"`
	Source  string `json:"source,omitempty"`
	Message string `json:"message,omitempty"`
}

// Engine owns the normalizer and the projector seed. Safe for concurrent use:
// every call builds its own projector state.
type Engine struct {
	Normalizer *viz.Normalizer
	// Seed makes the synthetic chord/stacked-area randomness reproducible.
	Seed int64
}

// New builds an engine with default detector tables.
func New(seed int64) *Engine {
	return &Engine{Normalizer: viz.NewNormalizer(), Seed: seed}
}

// Process classifies the raw value once and returns the canonical result.
func (e *Engine) Process(data any, query any) viz.Result {
	return e.Normalizer.Normalize(data, query)
}

// ProcessAndPersist computes Process once, projects the result into every
// chart family, and writes each projection plus a status record to the store.
// The canonical result is returned either way; store errors surface to the
// caller because losing the cache is an operational fault, not a data one.
func (e *Engine) ProcessAndPersist(ctx context.Context, data any, query any, store KeyValueStore) (viz.Result, error) {
	res := e.Process(data, query)
	queryText := fmt.Sprintf("%v", query)
	if s, ok := query.(string); ok {
		queryText = s
	}

	if res.IsInvalid {
		err := store.Set(ctx, StatusKey, Status{IsValid: false, Message: res.Message})
		return res, err
	}

	proj := project.New(e.Seed)
	for _, chart := range viz.AllChartTypes {
		payload := ChartPayload{
			Data:   proj.Shape(chart, res, queryText),
			Title:  res.Title,
			Source: res.Source,
		}
		if err := store.Set(ctx, string(chart), payload); err != nil {
			serr := store.Set(ctx, StatusKey, Status{IsValid: false, Message: err.Error()})
			if serr != nil {
				return res, fmt.Errorf("persist %s: %w (status write also failed: %v)", chart, err, serr)
			}
			return res, fmt.Errorf("persist %s: %w", chart, err)
		}
	}

	err := store.Set(ctx, StatusKey, Status{IsValid: true, Title: res.Title, Source: res.Source})
	return res, err
}
