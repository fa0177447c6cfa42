// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes using Go 1.22+ method patterns.

# Routes

Public:

	GET  /health
	GET  /election
	POST /verify
	POST /ballots
	GET  /students/{id}/status
	GET  /results
	POST /admin/login

Admin (X-Admin-Token required):

	GET    /admin/candidates
	POST   /admin/candidates
	DELETE /admin/candidates
	GET    /admin/votes
	GET    /admin/stats
	POST   /admin/publish
	GET    /admin/publish-status
	GET    /admin/logs
	POST   /admin/reset

Every route is wrapped in the logging middleware; admin routes
additionally pass through the token guard, which injects the acting
admin's name for audit logging.
*/
package router
