// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (request_id, method, path, remote) and completion
(status, duration_ms).

# Session Gating

Pages that need a logged-in user are wrapped with RequireLogin, which
redirects anonymous requests to /login?next=<path>:

	mux.HandleFunc("GET /results", middleware.RequireLogin(sessions, h.Results))

JSON endpoints use RequireLoginJSON and answer 401 instead. Both put the
session and the resolved user on the request context (see
session.FromContext and session.UserFromContext).

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

Bodies larger than MaxJSONBodyBytes are rejected.

WantsJSON reports whether the Accept header asks for JSON.

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used for salted IP hashes in failed-login logs.
*/
package middleware
