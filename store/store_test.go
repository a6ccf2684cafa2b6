// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ballotbox/testutil"
)

func TestSQLBallotStore_AppendAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	s := NewSQLBallotStore(db)
	ctx := context.Background()

	first, err := s.Append(ctx, "token-one")
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second, err := s.Append(ctx, "token-two")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	ballots, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, ballots, 2)

	seen := map[string]string{}
	for _, b := range ballots {
		seen[b.ID] = b.Ciphertext
	}
	assert.Equal(t, "token-one", seen[first.ID])
	assert.Equal(t, "token-two", seen[second.ID])
}

func TestSQLBallotStore_Unavailable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := NewSQLBallotStore(db)
	db.Close()

	_, err := s.Append(context.Background(), "token")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = s.ListAll(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestMemBallotStore_ConcurrentAppend(t *testing.T) {
	s := NewMemBallotStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Append(ctx, "token")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	ballots, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, ballots, 50)

	ids := map[string]bool{}
	for _, b := range ballots {
		ids[b.ID] = true
	}
	assert.Len(t, ids, 50)
}

func TestMemBallotStore_ListIsSnapshot(t *testing.T) {
	s := NewMemBallotStore()
	ctx := context.Background()

	_, err := s.Append(ctx, "a")
	require.NoError(t, err)

	snapshot, err := s.ListAll(ctx)
	require.NoError(t, err)

	_, err = s.Append(ctx, "b")
	require.NoError(t, err)

	assert.Len(t, snapshot, 1)
	assert.Equal(t, 2, s.Len())
}

func TestMemBallotStore_CancelledContext(t *testing.T) {
	s := NewMemBallotStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ListAll(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCandidateStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	s := NewCandidateStore(db)
	ctx := context.Background()

	_, err := s.Create(ctx, "  ", "", "")
	assert.ErrorIs(t, err, ErrInvalidCandidate)

	created, err := s.Create(ctx, "Anura Kumara Dissanayake", "Anura", "National People's Power")
	require.NoError(t, err)
	require.NotNil(t, created.BallotName)

	independentID := testutil.AddTestCandidate(t, db, "Solo Runner", "", "")

	candidates, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	byID := map[string]int{}
	for i, c := range candidates {
		byID[c.ID] = i
	}
	solo := candidates[byID[independentID]]
	assert.Nil(t, solo.BallotName)
	assert.Nil(t, solo.PartyName)

	anura := candidates[byID[created.ID]]
	assert.Equal(t, "Anura", *anura.BallotName)
	assert.Equal(t, "National People's Power", *anura.PartyName)
}
