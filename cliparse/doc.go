// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3641)
  - DatabaseURL: Database file path or connection string (default: election.db)
  - DatabaseType: "sqlite" (default) or "postgres"
  - JWTSecret: Secret signing admin session tokens (required)
  - AdminPassword: Shared admin password, plain or bcrypt hash (required)
  - StudentPassword: Shared student password, plain or bcrypt hash (required)
  - ElectionFile: Election YAML file path (optional)
  - Election: Parsed election configuration

# CLI Flags

	-p                 Server port
	-d                 Database URL
	-t                 Database type
	-e                 Election config YAML file
	--jwt-secret       Admin session signing secret
	--admin-password   Admin password or bcrypt hash
	--student-password Student password or bcrypt hash

# Environment Variables

Every flag has an environment fallback: PORT, DATABASE_URL,
DATABASE_TYPE, ELECTION_CONFIG, JWT_SECRET, ADMIN_PASSWORD,
STUDENT_PASSWORD. Secrets should come from the environment (main loads
a .env file first); the flags exist for development.

# Election File

The election YAML names the election, the category list, and the
student ID scheme. Anything omitted keeps its default:

	name: AIE Class Elections
	categories:
	  - Hostler Boy
	  - Dayscholar Boy
	  - Hostler Girl
	  - Dayscholar Girl
	id_scheme:
	  prefix: AIE24
	  digits: 3
	  min: 201
	  max: 261
*/
package cliparse
