// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballotbox/models"
)

var _ BallotStore = (*MemBallotStore)(nil)

// MemBallotStore implements a minimal in memory BallotStore for unit testing
type MemBallotStore struct {
	mu      sync.RWMutex
	ballots []models.Ballot
}

func NewMemBallotStore() *MemBallotStore {
	return &MemBallotStore{}
}

func (m *MemBallotStore) Append(ctx context.Context, ciphertext string) (models.Ballot, error) {
	if err := ctx.Err(); err != nil {
		return models.Ballot{}, ErrUnavailable
	}

	b := models.Ballot{
		ID:         uuid.NewString(),
		Ciphertext: ciphertext,
		CreatedAt:  time.Now().UTC(),
	}

	m.mu.Lock()
	m.ballots = append(m.ballots, b)
	m.mu.Unlock()

	return b, nil
}

func (m *MemBallotStore) ListAll(ctx context.Context) ([]models.Ballot, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrUnavailable
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy so callers never see later appends
	ballots := make([]models.Ballot, len(m.ballots))
	copy(ballots, m.ballots)
	return ballots, nil
}

// Len reports how many ballots have been appended.
func (m *MemBallotStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ballots)
}
