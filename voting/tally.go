// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/danielhkuo/ballotbox/ballot"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/party"
	"github.com/danielhkuo/ballotbox/store"
)

// Opener is the decrypting half of the confidentiality layer.
type Opener interface {
	Open(token string) ([]byte, error)
}

// Engine computes results from a full scan of the ballot store. Nothing is
// cached; every call decrypts every ballot again.
type Engine struct {
	opener   Opener
	ballots  store.BallotStore
	mediaURL string
}

func NewEngine(opener Opener, ballots store.BallotStore, mediaURL string) *Engine {
	return &Engine{opener: opener, ballots: ballots, mediaURL: mediaURL}
}

// Result is a computed tally plus how many ballots were used.
type Result struct {
	Rows    []models.TallyRow
	Counted int
	Skipped int
}

// ComputeResults returns one row per candidate, ordered by first-preference
// count, highest first. Ties keep the order of candidates.
func (e *Engine) ComputeResults(ctx context.Context, candidates []models.Candidate) ([]models.TallyRow, error) {
	res, err := e.Tally(ctx, candidates)
	if err != nil {
		return nil, err
	}
	return res.Rows, nil
}

// Tally is ComputeResults with counted/skipped totals. Ballots that fail to
// decrypt or decode are skipped; only a store failure is returned.
func (e *Engine) Tally(ctx context.Context, candidates []models.Candidate) (Result, error) {
	stored, err := e.ballots.ListAll(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrUnavailable) {
			err = fmt.Errorf("%w: %v", store.ErrUnavailable, err)
		}
		return Result{}, err
	}

	var res Result
	decoded := make([]ballot.Preferences, 0, len(stored))
	for _, b := range stored {
		prefs, err := e.open(b)
		if err != nil {
			// Legacy plaintext rows predate encryption and land here too
			slog.Warn("skipping ballot", "ballot_id", b.ID, "error", err)
			res.Skipped++
			continue
		}
		decoded = append(decoded, prefs)
	}
	res.Counted = len(decoded)

	res.Rows = make([]models.TallyRow, 0, len(candidates))
	for _, c := range candidates {
		row := newRow(party.Present(c, e.mediaURL))
		for _, prefs := range decoded {
			for rank := models.FirstRank; rank <= models.LastRank; rank++ {
				if id, ok := prefs.Candidate(rank); ok && id == c.ID {
					row.Counts[rank]++
				}
			}
		}
		row.First = row.Counts[models.FirstRank]
		res.Rows = append(res.Rows, row)
	}

	SortRows(res.Rows)
	return res, nil
}

func (e *Engine) open(b models.Ballot) (ballot.Preferences, error) {
	plaintext, err := e.opener.Open(b.Ciphertext)
	if err != nil {
		return nil, err
	}
	return ballot.Decode(plaintext)
}

func newRow(p party.Presentation) models.TallyRow {
	counts := make(map[int]int, models.LastRank)
	for rank := models.FirstRank; rank <= models.LastRank; rank++ {
		counts[rank] = 0
	}
	return models.TallyRow{
		CandidateID: p.CandidateID,
		Name:        p.DisplayName,
		Party:       p.Party,
		Color:       p.Color,
		SymbolURL:   p.SymbolURL,
		Counts:      counts,
	}
}

// SortRows orders rows by first-preference count descending. The sort is
// stable so tied candidates stay in registration order.
func SortRows(rows []models.TallyRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].First > rows[j].First
	})
}
