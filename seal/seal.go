// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seal

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the length of a ballot key in bytes.
const KeySize = chacha20poly1305.KeySize

// version prefixes every token so the format can change later.
const version byte = 0x01

var (
	ErrDecryption = errors.New("ballot could not be decrypted")
	ErrInvalidKey = errors.New("invalid encryption key")
)

// Sealer encrypts and decrypts ballots with a single process-wide key.
// It holds no mutable state and is safe for concurrent use.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer builds an XChaCha20-Poly1305 sealer. The key slice is not retained.
func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidKey, KeySize, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return &Sealer{aead: aead}, nil
}

// ParseKey decodes a base64 key as produced by GenerateKey.
func ParseKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		key, err = base64.RawURLEncoding.DecodeString(encoded)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: not base64", ErrInvalidKey)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidKey, KeySize, len(key))
	}
	return key, nil
}

// GenerateKey returns a fresh random key, base64 encoded.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// Seal encrypts plaintext under a fresh random nonce and returns a URL-safe
// text token: base64(version || nonce || ciphertext).
func (s *Sealer) Seal(plaintext []byte) (string, error) {
	nonceSize := s.aead.NonceSize()
	buf := make([]byte, 1+nonceSize, 1+nonceSize+len(plaintext)+s.aead.Overhead())
	buf[0] = version
	if _, err := rand.Read(buf[1:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	nonce := buf[1 : 1+nonceSize]
	out := s.aead.Seal(buf, nonce, plaintext, []byte{version})
	return base64.RawURLEncoding.EncodeToString(out), nil
}

// Open reverses Seal. Anything not sealed under this key, including legacy
// plaintext records, fails with ErrDecryption.
func (s *Sealer) Open(token string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: not a sealed token", ErrDecryption)
	}

	nonceSize := s.aead.NonceSize()
	if len(raw) < 1+nonceSize+s.aead.Overhead() {
		return nil, fmt.Errorf("%w: token too short", ErrDecryption)
	}
	if raw[0] != version {
		return nil, fmt.Errorf("%w: unknown token version %d", ErrDecryption, raw[0])
	}

	nonce, ciphertext := raw[1:1+nonceSize], raw[1+nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, []byte{version})
	if err != nil {
		return nil, ErrDecryption
	}
	return plaintext, nil
}
