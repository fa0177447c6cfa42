// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the class-ballot API.

# Handler Types

Each handler is a struct holding the election ledger and config:

  - VotingHandler: election bootstrap, student verify, ballot submission
  - CandidateHandler: admin candidate lifecycle (list, add, delete)
  - ResultsHandler: sealed/published results, tallies, publish flag
  - AdminHandler: admin login, dashboard stats, audit logs, reset

Handlers are created via constructor functions that accept *ledger.Ledger
and Config:

	votingHandler := handlers.NewVotingHandler(lg, cfg)

# Student Flow

	GET  /election           → GetElection (categories + candidates)
	POST /verify             → Verify (password, ID format, voted check)
	POST /ballots            → SubmitBallot (atomic, once per student)
	GET  /students/{id}/status → GetStudentStatus

Students authenticate with the shared password on every request; no
server-side session exists, so the multi-step voting wizard is entirely
client state.

# Admin Flow

	POST /admin/login → Login (returns session token)

All other /admin routes require the X-Admin-Token header:

	GET/POST/DELETE /admin/candidates → List / Add / Delete
	GET  /admin/votes          → GetVoteCounts (pre-publish tally)
	GET  /admin/stats          → GetStats
	POST /admin/publish        → Publish (one-way)
	GET  /admin/publish-status → GetPublishStatus
	GET  /admin/logs           → GetLogs
	POST /admin/reset          → Reset

# Error Mapping

Ledger sentinel errors become status codes: already-voted, duplicate
candidate, and delete-with-votes are 409; malformed input is 400;
unknown candidate deletion is 404. Storage failures are logged and
surface as generic 500s.
*/
package handlers
