// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/class-ballot/cliparse"
	"github.com/danielhkuo/class-ballot/handlers"
	"github.com/danielhkuo/class-ballot/ledger"
	"github.com/danielhkuo/class-ballot/middleware"
)

func NewRouter(lg *ledger.Ledger, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	votingHandler := handlers.NewVotingHandler(lg, cfg)
	candidateHandler := handlers.NewCandidateHandler(lg, cfg)
	resultsHandler := handlers.NewResultsHandler(lg, cfg)
	adminHandler := handlers.NewAdminHandler(lg, cfg)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(cfg.JWTSecret, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Student voting (shared password checked per request)
	mux.HandleFunc("GET /election", middleware.WithLogging(votingHandler.GetElection))
	mux.HandleFunc("POST /verify", middleware.WithLogging(votingHandler.Verify))
	mux.HandleFunc("POST /ballots", middleware.WithLogging(votingHandler.SubmitBallot))
	mux.HandleFunc("GET /students/{id}/status", middleware.WithLogging(votingHandler.GetStudentStatus))

	// Results (sealed until published)
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))

	// Admin session
	mux.HandleFunc("POST /admin/login", middleware.WithLogging(adminHandler.Login))

	// Admin operations (token required)
	mux.HandleFunc("GET /admin/candidates", admin(candidateHandler.List))
	mux.HandleFunc("POST /admin/candidates", admin(candidateHandler.Add))
	mux.HandleFunc("DELETE /admin/candidates", admin(candidateHandler.Delete))
	mux.HandleFunc("GET /admin/votes", admin(resultsHandler.GetVoteCounts))
	mux.HandleFunc("GET /admin/stats", admin(adminHandler.GetStats))
	mux.HandleFunc("POST /admin/publish", admin(resultsHandler.Publish))
	mux.HandleFunc("GET /admin/publish-status", admin(resultsHandler.GetPublishStatus))
	mux.HandleFunc("GET /admin/logs", admin(adminHandler.GetLogs))
	mux.HandleFunc("POST /admin/reset", admin(adminHandler.Reset))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("class-ballot API v1"))
	})

	return mux
}
