// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// authHashSalt namespaces session auth hashes away from other HMAC uses of
// the same secret.
const authHashSalt = "ballotbox.session.auth-hash"

var ErrInvalidAuthHash = errors.New("invalid session auth hash")

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateSessionToken creates a random secure session key
func GenerateSessionToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// SessionAuthHash derives the value stored in a session to pin it to the
// user's current password hash. Changing the password changes the hash, which
// invalidates every existing session for that user.
func SessionAuthHash(passwordHash, secret string) string {
	h := hmac.New(sha256.New, []byte(authHashSalt+secret))
	h.Write([]byte(passwordHash))
	return hex.EncodeToString(h.Sum(nil))
}

// ValidateSessionAuthHash checks a stored auth hash against the user's
// current password hash
func ValidateSessionAuthHash(stored, passwordHash, secret string) error {
	expected := SessionAuthHash(passwordHash, secret)
	if !hmac.Equal([]byte(stored), []byte(expected)) {
		return ErrInvalidAuthHash
	}
	return nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for correlating log lines
	return hex.EncodeToString(sum[:8])
}
