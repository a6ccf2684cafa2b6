// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var ErrMalformedBallot = errors.New("malformed ballot")

// Preferences maps a rank ("1", "2", "3") to a candidate ID.
// Keys outside that range are carried through untouched.
type Preferences map[string]string

// Candidate returns the candidate ranked at the given position.
func (p Preferences) Candidate(rank int) (string, bool) {
	id, ok := p[strconv.Itoa(rank)]
	return id, ok
}

// Encode serializes preferences as JSON. encoding/json sorts map keys, so the
// output is canonical for a given map.
func Encode(p Preferences) ([]byte, error) {
	if p == nil {
		p = Preferences{}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBallot, err)
	}
	return data, nil
}

// Decode parses the output of Encode.
func Decode(data []byte) (Preferences, error) {
	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBallot, err)
	}
	// "null" decodes without error but is not a ballot
	if p == nil {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedBallot)
	}
	return p, nil
}
