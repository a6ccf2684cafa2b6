// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/users"
)

const CookieName = "sessionid"

var (
	// ErrAuthentication is deliberately vague: it does not say whether the
	// username or the password was wrong.
	ErrAuthentication   = errors.New("invalid username or password")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Payload is what a session remembers about its user.
type Payload struct {
	UserID   string `json:"_auth_user_id,omitempty"`
	Backend  string `json:"_auth_user_backend,omitempty"`
	AuthHash string `json:"_auth_user_hash,omitempty"`
}

type Session struct {
	Key       string
	Payload   Payload
	ExpiresAt time.Time
}

// Authenticated reports whether the session carries a user.
func (s *Session) Authenticated() bool {
	return s != nil && s.Payload.UserID != ""
}

// UserStore is the credential side of login. users.SQLStore satisfies it.
type UserStore interface {
	Authenticate(ctx context.Context, username, password string) (models.User, error)
	Get(ctx context.Context, id uuid.UUID) (models.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type Manager struct {
	store  Store
	users  UserStore
	secret string
	maxAge time.Duration
	now    func() time.Time
}

func NewManager(store Store, users UserStore, secret string, maxAge time.Duration) *Manager {
	return &Manager{
		store:  store,
		users:  users,
		secret: secret,
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Load returns the session named by the request cookie, or a new anonymous
// session when there is none, it is unknown, or it has expired.
func (m *Manager) Load(ctx context.Context, r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return &Session{}
	}

	sess, err := m.store.Get(ctx, cookie.Value)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Error("failed to load session", "error", err)
		}
		return &Session{}
	}

	if !m.now().Before(sess.ExpiresAt) {
		if err := m.store.Delete(ctx, sess.Key); err != nil {
			slog.Warn("failed to delete expired session", "error", err)
		}
		return &Session{}
	}

	return sess
}

// Login authenticates the credentials and returns a new session for the user.
//
// The current session is flushed first and the returned session always has a
// fresh key, so a token planted before login is useless afterwards. The
// payload stores the user ID in its string form, so the user store's key type
// never has to fit an integer column. Recording last_login is best effort.
func (m *Manager) Login(ctx context.Context, current *Session, username, password string) (*Session, error) {
	user, err := m.users.Authenticate(ctx, username, password)
	if errors.Is(err, users.ErrInvalidCredentials) || errors.Is(err, users.ErrNotFound) {
		return nil, ErrAuthentication
	}
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	sess, err := m.flush(ctx, current)
	if err != nil {
		return nil, err
	}

	sess.Payload = Payload{
		UserID:   user.ID.String(),
		Backend:  users.Backend,
		AuthHash: auth.SessionAuthHash(user.PasswordHash, m.secret),
	}

	if err := m.cycleKey(ctx, sess); err != nil {
		return nil, err
	}

	now := m.now()
	if err := m.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		slog.Warn("could not update last_login", "user_id", user.ID.String(), "error", err)
	}

	sess.ExpiresAt = now.Add(m.maxAge)
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

// Logout deletes the session. The caller clears the cookie regardless of the
// returned error.
func (m *Manager) Logout(ctx context.Context, sess *Session) error {
	if sess == nil || sess.Key == "" {
		return nil
	}
	key := sess.Key
	*sess = Session{}
	return m.store.Delete(ctx, key)
}

// User resolves the session's user. A session whose auth hash no longer
// matches the user's password hash is flushed and treated as anonymous.
func (m *Manager) User(ctx context.Context, sess *Session) (models.User, error) {
	if !sess.Authenticated() || sess.Payload.Backend != users.Backend {
		return models.User{}, ErrNotAuthenticated
	}

	id, err := uuid.Parse(sess.Payload.UserID)
	if err != nil {
		return models.User{}, ErrNotAuthenticated
	}

	user, err := m.users.Get(ctx, id)
	if errors.Is(err, users.ErrNotFound) {
		return models.User{}, ErrNotAuthenticated
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to load session user: %w", err)
	}

	if err := auth.ValidateSessionAuthHash(sess.Payload.AuthHash, user.PasswordHash, m.secret); err != nil {
		if _, ferr := m.flush(ctx, sess); ferr != nil {
			slog.Warn("failed to flush stale session", "error", ferr)
		}
		return models.User{}, ErrNotAuthenticated
	}

	return user, nil
}

// WriteCookie sets the session cookie on the response.
func (m *Manager) WriteCookie(w http.ResponseWriter, r *http.Request, sess *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.Key,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(m.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// flush deletes any stored state for the session and returns an empty one.
func (m *Manager) flush(ctx context.Context, sess *Session) (*Session, error) {
	if sess != nil && sess.Key != "" {
		if err := m.store.Delete(ctx, sess.Key); err != nil {
			return nil, fmt.Errorf("failed to flush session: %w", err)
		}
		*sess = Session{}
	}
	return &Session{}, nil
}

// cycleKey gives the session a new key, keeping its payload.
func (m *Manager) cycleKey(ctx context.Context, sess *Session) error {
	key, err := auth.GenerateSessionToken()
	if err != nil {
		return err
	}
	old := sess.Key
	sess.Key = key
	if old != "" {
		if err := m.store.Delete(ctx, old); err != nil {
			return fmt.Errorf("failed to rotate session key: %w", err)
		}
	}
	return nil
}

type contextKey struct{}

// NewContext attaches a session to the context.
func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the session attached by NewContext, or an anonymous one.
func FromContext(ctx context.Context) *Session {
	if sess, ok := ctx.Value(contextKey{}).(*Session); ok && sess != nil {
		return sess
	}
	return &Session{}
}

type userKey struct{}

// WithUser attaches the authenticated user to the context.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the user attached by WithUser.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey{}).(models.User)
	return user, ok
}
