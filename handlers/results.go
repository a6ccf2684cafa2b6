// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/session"
	"github.com/danielhkuo/ballotbox/store"
	"github.com/danielhkuo/ballotbox/views"
	"github.com/danielhkuo/ballotbox/voting"
)

type ResultsHandler struct {
	candidates *store.CandidateStore
	engine     *voting.Engine
}

func NewResultsHandler(candidates *store.CandidateStore, engine *voting.Engine) *ResultsHandler {
	return &ResultsHandler{candidates: candidates, engine: engine}
}

// Results handles GET /results
// Renders HTML unless the client asks for JSON.
func (h *ResultsHandler) Results(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	wantsJSON := middleware.WantsJSON(r)

	candidates, err := h.candidates.List(ctx)
	if err != nil {
		slog.Error("failed to list candidates", "error", err)
		h.fail(w, wantsJSON)
		return
	}

	result, err := h.engine.Tally(ctx, candidates)
	if err != nil {
		slog.Error("failed to tally ballots", "error", err)
		h.fail(w, wantsJSON)
		return
	}

	if result.Skipped > 0 {
		slog.Warn("ballots excluded from tally", "skipped", result.Skipped, "counted", result.Counted)
	}

	if wantsJSON {
		middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
			Rows:    result.Rows,
			Counted: result.Counted,
			Skipped: result.Skipped,
		})
		return
	}

	user, _ := session.UserFromContext(ctx)
	views.Render(w, http.StatusOK, views.Results, views.ResultsData{
		User:    user,
		Rows:    result.Rows,
		Counted: result.Counted,
		Skipped: result.Skipped,
	})
}

func (h *ResultsHandler) fail(w http.ResponseWriter, wantsJSON bool) {
	if wantsJSON {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute results")
		return
	}
	http.Error(w, "Failed to compute results", http.StatusInternalServerError)
}
