package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission status constants
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Ranks counted by the tally
const (
	FirstRank = 1
	LastRank  = 3
)

// Request types

// rank ("1", "2", "3") -> candidate_id
type SubmitVoteRequest struct {
	Preferences map[string]string `json:"preferences"`
}

// Response types

type SubmitVoteResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type ResultsResponse struct {
	Rows    []TallyRow `json:"results"`
	Counted int        `json:"counted"`
	Skipped int        `json:"skipped"`
}

// Domain types

type Candidate struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	BallotName *string   `json:"ballot_name,omitempty"`
	PartyName  *string   `json:"party_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Ballot struct {
	ID         string    `json:"id"`
	Ciphertext string    `json:"-"` // Never expose in JSON
	CreatedAt  time.Time `json:"created_at"`
}

type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"` // Never expose in JSON
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Tally Types

type TallyRow struct {
	CandidateID string      `json:"candidate_id"`
	Name        string      `json:"name"`
	Party       string      `json:"party"`
	Color       string      `json:"color"`
	SymbolURL   string      `json:"party_symbol_url,omitempty"`
	Counts      map[int]int `json:"counts"` // rank -> count for ranks 1..3
	First       int         `json:"total_1st"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
