// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation and session hashing utilities.

# Session Tokens

Session keys are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateSessionToken()

Tokens are URL-safe base64 encoded and used as the session cookie value.
A new token is issued on every login.

# Session Auth Hashes

A session stores an HMAC of the user's password hash:

	h := auth.SessionAuthHash(user.PasswordHash, cfg.SecretKey)
	err := auth.ValidateSessionAuthHash(stored, user.PasswordHash, cfg.SecretKey)

When the password changes, the hash no longer validates and the session is
treated as logged out.

# ID Generation

Random hex IDs:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

For log correlation without recording addresses:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
