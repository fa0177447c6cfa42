// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Logging

WithLogging wraps handlers with slog request/completion logging:

	mux.HandleFunc("POST /ballots", middleware.WithLogging(handler.SubmitBallot))

# Admin Guard

RequireAdmin validates the X-Admin-Token session token and places the
admin's display name in the request context:

	middleware.RequireAdmin(cfg.JWTSecret, handler.Reset)

Handlers read the acting admin back with middleware.AdminName(r) for
audit log entries.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusConflict, "You have already voted")
	middleware.ParseJSONBody(r, &req)

# CORS

CORS wraps the whole mux to allow the browser frontend during
development. Preflight OPTIONS requests short-circuit with 200.

# Client IP

GetClientIP resolves the client address through X-Forwarded-For,
X-Real-IP, then RemoteAddr. Used (hashed) in audit log details.
*/
package middleware
