// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package seal provides symmetric authenticated encryption for stored ballots.

A Sealer is built once at startup from the configured key and shared by the
submission service and the tally engine:

	key, err := seal.ParseKey(cfg.EncryptionKey)
	sealer, err := seal.NewSealer(key)

	token, err := sealer.Seal(plaintext)
	plaintext, err := sealer.Open(token)

Tokens are XChaCha20-Poly1305 ciphertexts with a random 24-byte nonce,
prefixed with a version byte and encoded as unpadded URL-safe base64. Sealing
the same plaintext twice yields different tokens.

Open returns ErrDecryption for anything it cannot authenticate: a different
key, a corrupted token, or a record stored before encryption was introduced.
*/
package seal
