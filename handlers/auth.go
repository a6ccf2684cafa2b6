// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/session"
	"github.com/danielhkuo/ballotbox/views"
)

// LoginFailedMessage is shown for every failed login, whatever the cause.
const LoginFailedMessage = "Invalid username or password. Please try again."

type AuthHandler struct {
	sessions *session.Manager
	cfg      cliparse.Config
}

func NewAuthHandler(sessions *session.Manager, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{sessions: sessions, cfg: cfg}
}

// Login handles GET and POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := h.sessions.Load(ctx, r)

	// Already logged in
	_, err := h.sessions.User(ctx, sess)
	if err == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if !errors.Is(err, session.ErrNotAuthenticated) {
		slog.Warn("failed to resolve session user", "error", err)
	}

	if r.Method != http.MethodPost {
		views.Render(w, http.StatusOK, views.Login, views.LoginData{
			Next: r.URL.Query().Get("next"),
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		views.Render(w, http.StatusBadRequest, views.Login, views.LoginData{Error: LoginFailedMessage})
		return
	}

	next := r.PostForm.Get("next")
	if next == "" {
		next = r.URL.Query().Get("next")
	}

	sess, err = h.sessions.Login(ctx, sess, r.PostForm.Get("username"), r.PostForm.Get("password"))
	if errors.Is(err, session.ErrAuthentication) {
		slog.Warn("login failed", "ip_hash", auth.HashIP(middleware.GetClientIP(r), h.cfg.SecretKey))
		views.Render(w, http.StatusOK, views.Login, views.LoginData{
			Next:  next,
			Error: LoginFailedMessage,
		})
		return
	}
	if err != nil {
		slog.Error("failed to log in", "error", err)
		views.Render(w, http.StatusInternalServerError, views.Login, views.LoginData{
			Next:  next,
			Error: LoginFailedMessage,
		})
		return
	}

	slog.Info("user logged in", "user_id", sess.Payload.UserID)

	h.sessions.WriteCookie(w, r, sess)
	http.Redirect(w, r, safeRedirect(next), http.StatusFound)
}

// Logout handles GET and POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := h.sessions.Load(ctx, r)

	if err := h.sessions.Logout(ctx, sess); err != nil {
		slog.Warn("failed to delete session", "error", err)
	}

	h.sessions.ClearCookie(w)
	http.Redirect(w, r, middleware.LoginPath, http.StatusFound)
}

// safeRedirect returns next if it is a path on this site, otherwise "/".
func safeRedirect(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}
