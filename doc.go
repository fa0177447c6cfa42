// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the class-ballot API server.

Class Ballot is a single-election voting service for a small trusted
network: students authenticate with an ID and shared password and cast
one ballot across a fixed set of categories; an administrator manages
candidates, watches turnout, and publishes results.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	JWT_SECRET=... ADMIN_PASSWORD=... STUDENT_PASSWORD=... go run main.go

Or with flags:

	go run main.go -p 3641 -d election.db -e election.yaml

A .env file in the working directory is loaded first.

# Configuration

Required settings:

  - JWT_SECRET (--jwt-secret): Secret signing admin session tokens
  - ADMIN_PASSWORD (--admin-password): Shared admin password or bcrypt hash
  - STUDENT_PASSWORD (--student-password): Shared student password or bcrypt hash

Optional settings:

  - PORT (-p): Server port (default: 3641)
  - DATABASE_URL (-d): Database path/URL (default: election.db)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - ELECTION_CONFIG (-e): Election YAML (categories, ID scheme)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - ledger: the election core (vote transaction, candidate lifecycle,
    tally/publish, audit log) - everything above it is presentation glue
  - handlers: HTTP request handlers (voting, candidates, results, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, admin guard, JSON helpers
  - models: Request/response types and the injected election config
  - auth: Passwords, admin session tokens, ID generation
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
