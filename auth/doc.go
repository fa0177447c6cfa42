// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password checking and admin session tokens.

# Passwords

Both the student and admin credentials are single shared passwords
(this is a small trusted-network tool). CheckPassword accepts either a
bcrypt hash or a plain string as the configured secret:

	ok := auth.CheckPassword(cfg.AdminPassword, provided)

Plain secrets are compared in constant time.

# Admin Sessions

A successful admin login exchanges the shared password for a signed
HS256 token carrying the admin's display name:

	token, err := auth.IssueAdminToken("Priya", cfg.JWTSecret, time.Hour)
	name, err := auth.ParseAdminToken(token, cfg.JWTSecret)

The name ends up in the audit log as the acting admin, so concurrent
admin sessions remain distinguishable even with a shared credential.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

For privacy-preserving audit details:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
