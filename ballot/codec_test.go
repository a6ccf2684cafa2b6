// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		prefs Preferences
	}{
		{"full ballot", Preferences{"1": "a", "2": "b", "3": "c"}},
		{"first only", Preferences{"1": "a"}},
		{"gap in ranks", Preferences{"1": "a", "3": "c"}},
		{"same candidate twice", Preferences{"1": "a", "2": "a"}},
		{"empty", Preferences{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.prefs)
			require.NoError(t, err)

			got, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, tt.prefs, got)
		})
	}
}

func TestEncodeIsCanonical(t *testing.T) {
	a, err := Encode(Preferences{"3": "c", "1": "a", "2": "b"})
	require.NoError(t, err)
	b, err := Encode(Preferences{"1": "a", "2": "b", "3": "c"})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, `{"1":"a","2":"b","3":"c"}`, string(a))
}

func TestDecodeMalformed(t *testing.T) {
	inputs := []string{
		"",
		"not json",
		"null",
		`["a","b"]`,
		`{"1": 42}`,
		"gAAAAABlegacyplaintexttoken",
	}

	for _, in := range inputs {
		_, err := Decode([]byte(in))
		assert.ErrorIs(t, err, ErrMalformedBallot, "input %q", in)
	}
}

func TestCandidate(t *testing.T) {
	p := Preferences{"1": "a", "3": "c", "7": "z"}

	id, ok := p.Candidate(1)
	assert.True(t, ok)
	assert.Equal(t, "a", id)

	_, ok = p.Candidate(2)
	assert.False(t, ok)

	id, ok = p.Candidate(7)
	assert.True(t, ok)
	assert.Equal(t, "z", id)
}
