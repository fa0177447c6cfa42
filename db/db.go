// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database and verifies the connection.
// databaseType is "sqlite" or "postgres". For sqlite the database is
// switched to WAL journaling so a crash mid-transaction never leaves a
// half-written ballot, and a busy timeout keeps concurrent writers from
// failing immediately.
func Open(databaseType, databaseURL string) (*sql.DB, error) {
	driver := "sqlite"
	dsn := databaseURL
	if databaseType == "postgres" {
		driver = "postgres"
	} else {
		dsn = sqliteDSN(databaseURL)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// sqliteDSN carries the sqlite settings in the DSN so they apply to
// every connection the pool opens. busy_timeout is per-connection; a
// one-shot PRAGMA Exec would configure a single pooled connection and
// leave the rest failing instantly with SQLITE_BUSY under load.
//
// _txlock=immediate makes write transactions take their lock at BEGIN,
// so a second writer waits on the busy timeout instead of starting on a
// snapshot it can never upgrade.
func sqliteDSN(url string) string {
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(url, "file:") {
		url = "file:" + url
	}
	return url + sep + "_txlock=immediate" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(30000)"
}
