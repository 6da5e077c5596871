package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

var ErrNotFound = sql.ErrNoRows

// ChartRepo caches per-chart-type projections in Postgres, keyed by
// (session_id, chart_type). One repo instance is bound to one session so it
// satisfies the engine's KeyValueStore.
type ChartRepo struct {
	DB        *sql.DB
	SessionID string
}

func NewChartRepo(db *sql.DB, sessionID string) *ChartRepo {
	return &ChartRepo{DB: db, SessionID: sessionID}
}

// Set upserts the projection payload under the chart-type key.
func (r *ChartRepo) Set(ctx context.Context, key string, value any) error {
	js, err := json.Marshal(value)
	if err != nil {
		return err
	}
	const q = `
insert into chart_projections (session_id, chart_type, payload, created_at)
values ($1, $2, $3, now())
on conflict (session_id, chart_type) do update
set payload = excluded.payload,
    created_at = excluded.created_at`
	_, err = r.DB.ExecContext(ctx, q, r.SessionID, key, js)
	return err
}

// Get returns the cached payload for one chart type. If maxAge > 0 the row
// must be fresh enough, otherwise age is ignored.
func (r *ChartRepo) Get(ctx context.Context, key string, maxAge time.Duration) (json.RawMessage, error) {
	const q = `
select payload, created_at
from chart_projections
where session_id = $1 and chart_type = $2`
	var (
		js []byte
		ts time.Time
	)
	if err := r.DB.QueryRowContext(ctx, q, r.SessionID, key).Scan(&js, &ts); err != nil {
		return nil, err
	}
	if maxAge > 0 && time.Since(ts) > maxAge {
		return nil, ErrNotFound
	}
	return js, nil
}

// PurgeOlderThan deletes stale cache rows across all sessions.
func (r *ChartRepo) PurgeOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, errors.New("olderThan must be > 0")
	}
	cutoff := time.Now().Add(-olderThan)
	const q = `delete from chart_projections where created_at < $1`
	res, err := r.DB.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}
