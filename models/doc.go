// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - SubmitVoteRequest: preferences (map of rank to candidate_id)

# Response Types

  - SubmitVoteResponse: status, message
  - ResultsResponse: results, counted, skipped
  - ErrorResponse: error, message

# Domain Types

  - Candidate: registered candidate, read-only to the voting core
  - Ballot: encrypted ballot record (ciphertext is never serialized)
  - User: voter account keyed by UUID
  - TallyRow: per-candidate rank counts plus presentation metadata

# Constants

Submission status values:

	StatusSuccess = "success"
	StatusError   = "error"

Counted ranks run from FirstRank (1) to LastRank (3).
*/
package models
