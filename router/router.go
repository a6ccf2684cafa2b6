// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/handlers"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/seal"
	"github.com/danielhkuo/ballotbox/session"
	"github.com/danielhkuo/ballotbox/store"
	"github.com/danielhkuo/ballotbox/users"
	"github.com/danielhkuo/ballotbox/voting"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) (*http.ServeMux, error) {
	key, err := seal.ParseKey(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("invalid encryption key: %w", err)
	}
	sealer, err := seal.NewSealer(key)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	// Services
	ballots := store.NewSQLBallotStore(db)
	candidates := store.NewCandidateStore(db)
	service := voting.NewService(sealer, ballots)
	engine := voting.NewEngine(sealer, ballots, cfg.MediaURL)
	sessions := session.NewManager(session.NewSQLStore(db), users.NewSQLStore(db), cfg.SecretKey, cfg.SessionMaxAge)

	// Initialize handlers
	votingHandler := handlers.NewVotingHandler(candidates, service, cfg)
	resultsHandler := handlers.NewResultsHandler(candidates, engine)
	authHandler := handlers.NewAuthHandler(sessions, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voting (login required)
	mux.HandleFunc("GET /{$}", middleware.WithLogging(middleware.RequireLogin(sessions, votingHandler.Index)))
	mux.HandleFunc("POST /submit", middleware.WithLogging(middleware.RequireLoginJSON(sessions, votingHandler.SubmitVote)))
	mux.HandleFunc("/submit", middleware.WithLogging(votingHandler.InvalidMethod))
	mux.HandleFunc("GET /success", middleware.WithLogging(votingHandler.Success))

	// Results (login required)
	mux.HandleFunc("GET /results", middleware.WithLogging(middleware.RequireLogin(sessions, resultsHandler.Results)))

	// Sessions
	mux.HandleFunc("GET /login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("GET /logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("POST /logout", middleware.WithLogging(authHandler.Logout))

	// Party symbols, when served locally
	if cfg.MediaRoot != "" && strings.HasPrefix(cfg.MediaURL, "/") {
		prefix := strings.TrimSuffix(cfg.MediaURL, "/") + "/"
		mux.Handle("GET "+prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.MediaRoot))))
	}

	return mux, nil
}
