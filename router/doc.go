// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the ballotbox server.

# Route Registration

NewRouter builds the sealer, stores and session manager from the
configuration and returns a configured http.ServeMux:

	mux, err := router.NewRouter(db, cfg)

It fails only when the encryption key is unusable.

# Endpoints

Health:

	GET /health

Voting (login required):

	GET  /         - Ballot page
	POST /submit   - Submit preferences (JSON, 401 when anonymous)
	GET  /results  - Tally, HTML or JSON

Public:

	GET  /success        - Submission confirmation
	GET|POST /login      - Login form
	GET|POST /logout     - End the session
	GET  <MEDIA_URL>...  - Party symbols, only when MEDIA_ROOT is set

Any other method on /submit gets a JSON 405.
*/
package router
