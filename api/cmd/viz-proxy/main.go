package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"viz-proxy/api/internal/config"
	"viz-proxy/api/internal/engine"
	"viz-proxy/api/internal/handle"
	"viz-proxy/api/internal/store"
)

func main() {
	cfg := config.Load()

	eng := engine.New(cfg.ChordSeed)

	// Projections go to Postgres when a DSN is configured, otherwise to the
	// in-process cache.
	var stores handle.StoreFactory
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("sql.Open: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(1 * time.Hour)
		{
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				log.Fatalf("db.Ping: %v", err)
			}
			log.Printf("db connected")
		}
		stores = func(sessionID string) engine.KeyValueStore {
			return store.NewChartRepo(db, sessionID)
		}
		go purgeLoop(db)
	} else {
		mem := store.NewMemStore()
		stores = func(string) engine.KeyValueStore { return mem }
	}

	h := handle.New(eng, stores)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/v1/viz/process", h.Process)
	mux.HandleFunc("/v1/viz/charts", h.Charts)
	mux.HandleFunc("/v1/viz/recommend", h.Recommend)
	mux.HandleFunc("/v1/viz/colors", h.Colors)

	addr := ":" + cfg.Port
	log.Printf("viz-proxy listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}

// purgeLoop drops projection rows older than a day, once an hour.
func purgeLoop(db *sql.DB) {
	repo := store.NewChartRepo(db, "")
	for range time.Tick(1 * time.Hour) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := repo.PurgeOlderThan(ctx, 24*time.Hour)
		cancel()
		if err != nil {
			log.Printf("purge: %v", err)
			continue
		}
		if n > 0 {
			log.Printf("purge: removed %d stale projections", n)
		}
	}
}
