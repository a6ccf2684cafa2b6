// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballotbox/models"
)

var ErrInvalidCandidate = errors.New("candidate full name is required")

type CandidateStore struct {
	db *sql.DB
}

func NewCandidateStore(db *sql.DB) *CandidateStore {
	return &CandidateStore{db: db}
}

// List returns candidates in registration order. This order is the tie-break
// order of the results table.
func (s *CandidateStore) List(ctx context.Context) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, full_name, ballot_name, party_name, created_at
		FROM candidate
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		var ballotName, partyName sql.NullString
		if err := rows.Scan(&c.ID, &c.FullName, &ballotName, &partyName, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		if ballotName.Valid {
			c.BallotName = &ballotName.String
		}
		if partyName.Valid {
			c.PartyName = &partyName.String
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}

	return candidates, nil
}

// Create registers a candidate. Empty ballot and party names are stored as NULL.
func (s *CandidateStore) Create(ctx context.Context, fullName, ballotName, partyName string) (models.Candidate, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return models.Candidate{}, ErrInvalidCandidate
	}

	c := models.Candidate{
		ID:        uuid.NewString(),
		FullName:  fullName,
		CreatedAt: time.Now().UTC(),
	}
	if v := strings.TrimSpace(ballotName); v != "" {
		c.BallotName = &v
	}
	if v := strings.TrimSpace(partyName); v != "" {
		c.PartyName = &v
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO candidate (id, full_name, ballot_name, party_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.FullName, c.BallotName, c.PartyName, c.CreatedAt)
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to insert candidate: %w", err)
	}

	return c, nil
}
