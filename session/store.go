// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Store persists sessions by key.
type Store interface {
	Get(ctx context.Context, key string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, key string) error
}

var (
	_ Store = (*SQLStore)(nil)
	_ Store = (*MemStore)(nil)
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(ctx context.Context, key string) (*Session, error) {
	var data string
	sess := &Session{Key: key}
	err := s.db.QueryRowContext(ctx, `
		SELECT data, expires_at FROM session WHERE session_key = $1
	`, key).Scan(&data, &sess.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	if err := json.Unmarshal([]byte(data), &sess.Payload); err != nil {
		return nil, fmt.Errorf("failed to decode session payload: %w", err)
	}
	return sess, nil
}

// Save inserts or replaces the session row.
func (s *SQLStore) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode session payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session (session_key, data, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_key) DO UPDATE
		SET data = excluded.data, expires_at = excluded.expires_at
	`, sess.Key, string(data), sess.ExpiresAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE session_key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions that expired before now and reports how
// many were removed.
func (s *SQLStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE expires_at < $1`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}

// MemStore implements a minimal in memory Store for unit testing
type MemStore struct {
	mu       sync.Mutex
	sessions map[string]Session
}

func NewMemStore() *MemStore {
	return &MemStore{sessions: map[string]Session{}}
}

func (m *MemStore) Get(ctx context.Context, key string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (m *MemStore) Save(ctx context.Context, sess *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.Key] = *sess
	return nil
}

func (m *MemStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, key)
	return nil
}

// Len reports how many sessions are stored.
func (m *MemStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
