// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/cover-rounds/cliparse"
	"github.com/danielhkuo/cover-rounds/handlers"
	"github.com/danielhkuo/cover-rounds/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	projectHandler := handlers.NewProjectHandler(db, cfg)
	roundHandler := handlers.NewRoundHandler(db, cfg)
	signupHandler := handlers.NewSignupHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	submissionHandler := handlers.NewSubmissionHandler(db, cfg)
	reflectionHandler := handlers.NewReflectionHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Projects and participants
	mux.HandleFunc("POST /projects", middleware.WithLogging(projectHandler.CreateProject))
	mux.HandleFunc("POST /projects/{id}/participants", middleware.WithLogging(projectHandler.ClaimUsername))
	mux.HandleFunc("POST /projects/{id}/rounds", middleware.WithLogging(roundHandler.CreateRound))

	// Round snapshot (public, personalized with X-User-Token)
	mux.HandleFunc("GET /rounds/{id}", middleware.WithLogging(roundHandler.GetRound))

	// Phase-gated participant writes
	mux.HandleFunc("POST /rounds/{id}/signups", middleware.WithLogging(signupHandler.SubmitSignup))
	mux.HandleFunc("POST /rounds/{id}/votes", middleware.WithLogging(votingHandler.SubmitVotes))
	mux.HandleFunc("POST /rounds/{id}/submissions", middleware.WithLogging(submissionHandler.SubmitCover))

	// Reflections
	mux.HandleFunc("POST /rounds/{id}/reflections", middleware.WithLogging(reflectionHandler.CreateReflection))
	mux.HandleFunc("GET /rounds/{id}/reflections", middleware.WithLogging(reflectionHandler.ListReflections))

	// Results (sealed until covering) and admin reporting
	mux.HandleFunc("GET /rounds/{id}/results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /rounds/{id}/outstanding-voters", middleware.WithLogging(resultsHandler.GetOutstandingVoters))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("cover-rounds API v1"))
	})

	return mux
}
