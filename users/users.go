// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/ballotbox/models"
)

// Backend identifies this authenticator in session payloads.
const Backend = "users.SQLStore"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidUser        = errors.New("username and password are required")
)

// dummyHash is compared against when the username does not exist so that
// unknown users cost the same as wrong passwords.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("ballotbox-dummy-password"), bcrypt.DefaultCost)

type SQLStore struct {
	db   *sql.DB
	cost int
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, cost: bcrypt.DefaultCost}
}

// Create registers a user with a bcrypt password hash.
func (s *SQLStore) Create(ctx context.Context, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, ErrInvalidUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	u := models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO app_user (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, u.ID.String(), u.Username, u.PasswordHash, u.CreatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return u, nil
}

// Get loads a user by primary key.
func (s *SQLStore) Get(ctx context.Context, id uuid.UUID) (models.User, error) {
	return s.queryOne(ctx, `
		SELECT id, username, password_hash, last_login, created_at
		FROM app_user WHERE id = $1
	`, id.String())
}

// Authenticate checks a username and password. Unknown users and wrong
// passwords both return ErrInvalidCredentials.
func (s *SQLStore) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	u, err := s.queryOne(ctx, `
		SELECT id, username, password_hash, last_login, created_at
		FROM app_user WHERE username = $1
	`, username)
	if errors.Is(err, ErrNotFound) {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	return u, nil
}

// TouchLastLogin records a successful login.
func (s *SQLStore) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE app_user SET last_login = $1 WHERE id = $2
	`, at.UTC(), id.String())
	if err != nil {
		return fmt.Errorf("failed to update last_login: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPassword replaces a user's password. Existing sessions stop validating
// because their auth hash was derived from the old password hash.
func (s *SQLStore) SetPassword(ctx context.Context, id uuid.UUID, password string) error {
	if password == "" {
		return ErrInvalidUser
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE app_user SET password_hash = $1 WHERE id = $2
	`, string(hash), id.String())
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) queryOne(ctx context.Context, query string, arg string) (models.User, error) {
	var u models.User
	var id string
	var lastLogin sql.NullTime
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&id, &u.Username, &u.PasswordHash, &lastLogin, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	u.ID, err = uuid.Parse(id)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to parse user id: %w", err)
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return u, nil
}
