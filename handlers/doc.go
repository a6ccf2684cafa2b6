// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ballotbox server.

# Handler Types

Each handler is a struct holding the services it needs:

  - VotingHandler: ballot page, vote submission, confirmation page
  - ResultsHandler: decrypted per-rank tally (HTML or JSON)
  - AuthHandler: login and logout

Handlers are created via constructor functions:

	votingHandler := handlers.NewVotingHandler(candidates, service, cfg)

# Voting Flow

	GET  /         → Index (ballot page, login required)
	POST /submit   → SubmitVote (JSON, login required)
	*    /submit   → InvalidMethod (405)
	GET  /success  → Success

SubmitVote takes {"preferences": {"1": "<candidate id>", ...}} and answers
{"status": "success"} or {"status": "error", "message": "..."}. Internal
failures are logged and reported with a generic message.

# Results

	GET /results → Results (login required)

Responds with JSON when the Accept header asks for it, HTML otherwise.
Ballots that fail to decrypt or decode are left out of the counts.

# Sessions

	GET|POST /login  → Login
	GET|POST /logout → Logout

A successful login always issues a new session key and redirects to the
"next" form field, then the "next" query parameter, then "/". Only paths on
this site are followed. Every failed login shows the same message.
*/
package handlers
