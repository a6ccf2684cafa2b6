// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotbox/ballot"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/party"
	"github.com/danielhkuo/ballotbox/session"
	"github.com/danielhkuo/ballotbox/store"
	"github.com/danielhkuo/ballotbox/views"
	"github.com/danielhkuo/ballotbox/voting"
)

type VotingHandler struct {
	candidates *store.CandidateStore
	votes      *voting.Service
	cfg        cliparse.Config
}

func NewVotingHandler(candidates *store.CandidateStore, votes *voting.Service, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{candidates: candidates, votes: votes, cfg: cfg}
}

// Index handles GET /
func (h *VotingHandler) Index(w http.ResponseWriter, r *http.Request) {
	user, _ := session.UserFromContext(r.Context())

	candidates, err := h.candidates.List(r.Context())
	if err != nil {
		slog.Error("failed to list candidates", "error", err)
		http.Error(w, "Failed to load candidates", http.StatusInternalServerError)
		return
	}

	presented := make([]party.Presentation, 0, len(candidates))
	for _, c := range candidates {
		presented = append(presented, party.Present(c, h.cfg.MediaURL))
	}

	views.Render(w, http.StatusOK, views.Index, views.IndexData{
		User:       user,
		Candidates: presented,
	})
}

// SubmitVote handles POST /submit
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			submitError(w, http.StatusRequestEntityTooLarge, "Ballot too large")
			return
		}
		submitError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := h.votes.Submit(r.Context(), ballot.Preferences(req.Preferences))
	if errors.Is(err, voting.ErrEmptyBallot) {
		submitError(w, http.StatusBadRequest, "No preferences selected")
		return
	}
	if err != nil {
		// The cause stays in the log; the voter gets a generic message.
		slog.Error("failed to record vote", "error", err)
		submitError(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	slog.Info("vote recorded", "ranks", len(req.Preferences))

	middleware.JSONResponse(w, http.StatusOK, models.SubmitVoteResponse{
		Status: models.StatusSuccess,
	})
}

// InvalidMethod answers every non-POST request to /submit
func (h *VotingHandler) InvalidMethod(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	submitError(w, http.StatusMethodNotAllowed, "Invalid method")
}

// Success handles GET /success
func (h *VotingHandler) Success(w http.ResponseWriter, r *http.Request) {
	views.Render(w, http.StatusOK, views.Success, nil)
}

func submitError(w http.ResponseWriter, status int, message string) {
	middleware.JSONResponse(w, status, models.SubmitVoteResponse{
		Status:  models.StatusError,
		Message: message,
	})
}
