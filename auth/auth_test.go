// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
		{"24 bytes", 24, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			// Verify it's valid hex
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	// Test randomness - two IDs should be different
	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestGenerateSessionToken(t *testing.T) {
	token, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	// 24 bytes -> 32 base64 chars, no padding
	if len(token) != 32 {
		t.Errorf("GenerateSessionToken() length = %d, want 32", len(token))
	}
	if strings.ContainsAny(token, "+/=") {
		t.Errorf("GenerateSessionToken() is not URL-safe: %s", token)
	}

	other, _ := GenerateSessionToken()
	if token == other {
		t.Error("GenerateSessionToken() produced duplicate tokens (extremely unlikely)")
	}
}

func TestSessionAuthHash(t *testing.T) {
	tests := []struct {
		name         string
		passwordHash string
		secret       string
	}{
		{"standard", "$2a$10$abcdefghijklmnopqrstuv", "secret"},
		{"empty hash", "", "secret"},
		{"empty secret", "$2a$10$abcdefghijklmnopqrstuv", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := SessionAuthHash(tt.passwordHash, tt.secret)

			if len(h) != 64 {
				t.Errorf("SessionAuthHash() length = %d, want 64", len(h))
			}

			// Should be deterministic
			if h != SessionAuthHash(tt.passwordHash, tt.secret) {
				t.Error("SessionAuthHash() is not deterministic")
			}

			// A password change must change the hash
			if h == SessionAuthHash(tt.passwordHash+"x", tt.secret) {
				t.Error("SessionAuthHash() ignored the password hash")
			}

			if h == SessionAuthHash(tt.passwordHash, tt.secret+"x") {
				t.Error("SessionAuthHash() ignored the secret")
			}
		})
	}
}

func TestValidateSessionAuthHash(t *testing.T) {
	passwordHash := "$2a$10$abcdefghijklmnopqrstuv"
	secret := "test-secret"
	valid := SessionAuthHash(passwordHash, secret)

	tampered := "0" + valid[1:]
	if valid[0] == '0' {
		tampered = "1" + valid[1:]
	}

	tests := []struct {
		name         string
		stored       string
		passwordHash string
		secret       string
		wantErr      bool
	}{
		{"valid hash", valid, passwordHash, secret, false},
		{"rotated password", valid, passwordHash + "new", secret, true},
		{"wrong secret", valid, passwordHash, "different-secret", true},
		{"tampered", tampered, passwordHash, secret, true},
		{"empty", "", passwordHash, secret, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSessionAuthHash(tt.stored, tt.passwordHash, tt.secret)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSessionAuthHash() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidAuthHash {
				t.Errorf("ValidateSessionAuthHash() error = %v, want %v", err, ErrInvalidAuthHash)
			}
		})
	}
}

func TestHashIP(t *testing.T) {
	a := HashIP("203.0.113.7", "salt")
	if len(a) != 16 {
		t.Errorf("HashIP() length = %d, want 16", len(a))
	}
	if a != HashIP("203.0.113.7", "salt") {
		t.Error("HashIP() is not deterministic")
	}
	if a == HashIP("203.0.113.8", "salt") {
		t.Error("HashIP() produced same hash for different IPs")
	}
	if strings.Contains(a, "203") && strings.Contains(a, "113") {
		t.Error("HashIP() appears to leak the address")
	}
}
