// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Election Configuration

Election and IDScheme are the injected configuration the ledger runs
against. Nothing in the core hard-codes the category list or the
student ID range; both come from the election YAML file:

	election := models.Election{
		Categories: []string{"Hostler Boy", ...},
		IDScheme:   models.IDScheme{Prefix: "AIE24", Digits: 3, Min: 201, Max: 261},
	}

IDScheme.Valid is the pure eligibility check: trim, upper-case, match
prefix, and require exactly Digits digits whose value lies in [Min, Max].

# Request Types

Types for parsing incoming JSON:

  - VerifyRequest: student_id, password
  - SubmitBallotRequest: student_id, password, selections (category -> candidate)
  - AdminLoginRequest: password, optional display name
  - CandidateRequest: name, category

# Response Types

Types for JSON responses:

  - VerifyResponse, SubmitBallotResponse, StudentStatusResponse
  - AdminLoginResponse: token, name
  - ElectionResponse: categories with candidate lists plus publish flag
  - ResultsResponse: per-category tied winners plus publish metadata
  - VoteCountsResponse, AdminLogsResponse
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Candidate: candidate row with its vote count
  - VoteCount: one (category, candidate, votes) tally row
  - CategoryResult: tied winner set for one category
  - PublishStatus: one-way publish flag with timestamp and admin
  - AdminLogEntry: append-only audit record
  - VotingStats: turnout numbers derived from the ID scheme

# Constants

Admin log actions:

	ActionAdminLogin      = "ADMIN_LOGIN"
	ActionAddCandidate    = "ADD_CANDIDATE"
	ActionDeleteCandidate = "DELETE_CANDIDATE"
	ActionPublishResults  = "PUBLISH_RESULTS"
	ActionResetElection   = "RESET_ELECTION"
*/
package models
