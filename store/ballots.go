// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballotbox/models"
)

var ErrUnavailable = errors.New("ballot store unavailable")

// BallotStore is append-only. Results are always computed from a full scan,
// so there is no lookup, update or delete.
type BallotStore interface {
	Append(ctx context.Context, ciphertext string) (models.Ballot, error)
	ListAll(ctx context.Context) ([]models.Ballot, error)
}

var _ BallotStore = (*SQLBallotStore)(nil)

type SQLBallotStore struct {
	db *sql.DB
}

func NewSQLBallotStore(db *sql.DB) *SQLBallotStore {
	return &SQLBallotStore{db: db}
}

// Append assigns the ID and timestamp and persists the ballot.
func (s *SQLBallotStore) Append(ctx context.Context, ciphertext string) (models.Ballot, error) {
	b := models.Ballot{
		ID:         uuid.NewString(),
		Ciphertext: ciphertext,
		CreatedAt:  time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ballot (id, ciphertext, created_at)
		VALUES ($1, $2, $3)
	`, b.ID, b.Ciphertext, b.CreatedAt)
	if err != nil {
		return models.Ballot{}, fmt.Errorf("%w: insert ballot: %v", ErrUnavailable, err)
	}

	return b, nil
}

// ListAll returns every stored ballot in no particular order.
func (s *SQLBallotStore) ListAll(ctx context.Context) ([]models.Ballot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ciphertext, created_at FROM ballot
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: query ballots: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	ballots := []models.Ballot{}
	for rows.Next() {
		var b models.Ballot
		if err := rows.Scan(&b.ID, &b.Ciphertext, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan ballot: %v", ErrUnavailable, err)
		}
		ballots = append(ballots, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate ballots: %v", ErrUnavailable, err)
	}

	return ballots, nil
}
