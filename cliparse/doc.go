// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Subcommands use ParseCommand, which also returns positional arguments.
The last argument says whether the secrets must be set; commands that only
touch the database pass false:

	cfg, args, err := cliparse.ParseCommand("createuser", argv, false)

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - EncryptionKey: base64 32-byte ballot key (required by serve and tally)
  - SecretKey: Secret for session auth hashes (required by serve and tally)
  - MediaURL: Public prefix for party symbols (default: /media/)
  - MediaRoot: Directory served under MediaURL (optional)
  - SessionMaxAge: Session lifetime (default: 336h)

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	ENCRYPTION_KEY  → --encryption-key
	SECRET_KEY      → --secret-key
	MEDIA_URL       → --media-url
	MEDIA_ROOT      → --media-root
	SESSION_MAX_AGE → --session-max-age

CLI flags take precedence over environment variables. A .env file in the
working directory is loaded by main before parsing.
*/
package cliparse
