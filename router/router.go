// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/same-returns/cliparse"
	"github.com/danielhkuo/same-returns/handlers"
	"github.com/danielhkuo/same-returns/middleware"
	"github.com/danielhkuo/same-returns/store"
)

// Banner is served at the root path
const Banner = "same-returns survey API v1"

const healthTimeout = 2 * time.Second

func NewRouter(st store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	voteHandler := handlers.NewVoteHandler(st, cfg)
	resultsHandler := handlers.NewResultsHandler(st, cfg)

	// Health check reports 503 while the store is unreachable
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			slog.Warn("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("UNAVAILABLE"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voting
	mux.HandleFunc("POST /vote", middleware.WithLogging(voteHandler.Vote))

	// Results
	mux.HandleFunc("GET /tally/{stage}", middleware.WithLogging(resultsHandler.GetTally))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(Banner))
	})

	return mux
}
