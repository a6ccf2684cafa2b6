// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/ballotbox/ballot"
	"github.com/danielhkuo/ballotbox/store"
)

var (
	ErrEmptyBallot = errors.New("no preferences selected")
	ErrSealFailed  = errors.New("ballot could not be encrypted")
)

// Sealer is the encrypting half of the confidentiality layer.
type Sealer interface {
	Seal(plaintext []byte) (string, error)
}

// Service records ballots. Each successful Submit appends exactly one ballot;
// nothing ties the ballot to the submitter.
type Service struct {
	sealer  Sealer
	ballots store.BallotStore
}

func NewService(sealer Sealer, ballots store.BallotStore) *Service {
	return &Service{sealer: sealer, ballots: ballots}
}

// Submit validates, encodes, seals and stores a ballot.
//
// Rank keys are not checked against 1..3 and candidates may repeat across
// ranks; only an empty ballot is rejected. Errors wrap one of
// ErrEmptyBallot, ballot.ErrMalformedBallot, ErrSealFailed or
// store.ErrUnavailable and never carry ballot content.
func (s *Service) Submit(ctx context.Context, prefs ballot.Preferences) error {
	if len(prefs) == 0 {
		return ErrEmptyBallot
	}

	plaintext, err := ballot.Encode(prefs)
	if err != nil {
		return err
	}

	token, err := s.sealer.Seal(plaintext)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSealFailed, err)
	}

	if _, err := s.ballots.Append(ctx, token); err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	return nil
}
