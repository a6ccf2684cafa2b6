// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the ballotbox command.

ballotbox is a small preference voting server. Logged-in voters rank up to
three candidates, each ballot is encrypted before it is stored, and the
results page decrypts every ballot and counts preferences by rank.

# Commands

	ballotbox serve [flags]                        Run the web application
	ballotbox createuser [flags] <username>        Add a voter
	ballotbox addcandidate [flags] <name> [ballot name] [party]
	ballotbox tally [flags]                        Print results to stdout
	ballotbox clearsessions [flags]                Delete expired sessions
	ballotbox keygen                               Print fresh secrets

Each command except keygen takes the same flags, parsed by cliparse.

# Configuration

A .env file in the working directory is loaded first if present. Required
settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - ENCRYPTION_KEY (--encryption-key): base64 32-byte ballot key
  - SECRET_KEY (--secret-key): session auth hash secret

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - MEDIA_URL (--media-url): party symbol URL prefix (default: /media/)
  - MEDIA_ROOT (--media-root): directory to serve under MEDIA_URL
  - SESSION_MAX_AGE (--session-max-age): session lifetime (default: 336h)

Losing ENCRYPTION_KEY makes every stored ballot unreadable.

# Architecture

  - handlers: HTTP request handlers (voting, results, login)
  - router: Route definitions using Go 1.22+ routing
  - middleware: logging, session gating, JSON helpers
  - views: embedded HTML templates
  - voting: submission service and tally engine
  - ballot, seal: preference codec and ballot encryption
  - store, users, session: persistence
  - party: candidate presentation tables
  - auth: tokens and HMAC helpers
  - db: connection and schema
  - cliparse: configuration parsing
*/
package main
