// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/danielhkuo/ballotbox/session"
)

// LoginPath is where anonymous page requests are sent.
const LoginPath = "/login"

// RequireLogin redirects anonymous requests to the login page, remembering
// where they were headed.
func RequireLogin(m *session.Manager, next http.HandlerFunc) http.HandlerFunc {
	return requireLogin(m, next, func(w http.ResponseWriter, r *http.Request) {
		target := LoginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
		http.Redirect(w, r, target, http.StatusFound)
	})
}

// RequireLoginJSON answers anonymous requests with 401.
func RequireLoginJSON(m *session.Manager, next http.HandlerFunc) http.HandlerFunc {
	return requireLogin(m, next, func(w http.ResponseWriter, r *http.Request) {
		ErrorResponse(w, http.StatusUnauthorized, "Login required")
	})
}

func requireLogin(m *session.Manager, next http.HandlerFunc, deny http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := m.Load(ctx, r)

		user, err := m.User(ctx, sess)
		if err != nil {
			if !errors.Is(err, session.ErrNotAuthenticated) {
				slog.Error("failed to resolve session user", "error", err)
				ErrorResponse(w, http.StatusInternalServerError, "Session error")
				return
			}
			deny(w, r)
			return
		}

		ctx = session.NewContext(ctx, sess)
		ctx = session.WithUser(ctx, user)
		next(w, r.WithContext(ctx))
	}
}
