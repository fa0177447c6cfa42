// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/class-ballot/auth"
	"github.com/danielhkuo/class-ballot/cliparse"
	"github.com/danielhkuo/class-ballot/db"
	"github.com/danielhkuo/class-ballot/models"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. Each call gets its own database; the shared-cache DSN keeps
// it alive across pool connections, and a single connection serializes
// access the way the WAL file does in production.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	name, err := auth.GenerateID(8)
	if err != nil {
		t.Fatalf("Failed to generate database name: %v", err)
	}

	conn, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// TestElection returns the election configuration used in tests.
func TestElection() models.Election {
	return cliparse.DefaultElection()
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3641,
		DatabaseURL:     ":memory:",
		DatabaseType:    "sqlite",
		JWTSecret:       "test-jwt-secret",
		AdminPassword:   "test-admin-password",
		StudentPassword: "test-student-password",
		Election:        TestElection(),
	}
}

// StudentID returns the n-th eligible student ID of the test election
// (n = 0 is the first ID in the range).
func StudentID(n int) string {
	scheme := TestElection().IDScheme
	return fmt.Sprintf("%s%0*d", scheme.Prefix, scheme.Digits, scheme.Min+n)
}

// AddTestCandidate inserts a candidate directly and returns its ID
func AddTestCandidate(t *testing.T, conn *sql.DB, name, category string) string {
	t.Helper()

	id, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO candidates (id, name, category, added_at)
		VALUES ($1, $2, $3, $4)
	`, id, name, category, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return id
}

// SeedTestCandidates adds one candidate named after the category to
// every category, so complete ballots can be built quickly:
//
//	selections := testutil.SeedTestCandidates(t, conn)
func SeedTestCandidates(t *testing.T, conn *sql.DB) map[string]string {
	t.Helper()

	selections := make(map[string]string)
	for _, category := range TestElection().Categories {
		name := category + " Candidate"
		AddTestCandidate(t, conn, name, category)
		selections[category] = name
	}
	return selections
}

// SubmitTestBallot writes a complete ballot directly, bypassing the
// ledger, for tests that need pre-existing votes
func SubmitTestBallot(t *testing.T, conn *sql.DB, studentID string, selections map[string]string) {
	t.Helper()

	now := time.Now()
	for category, candidate := range selections {
		_, err := conn.Exec(`
			INSERT INTO votes (id, student_id, category, candidate, voted_at)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.NewString(), studentID, category, candidate, now)
		if err != nil {
			t.Fatalf("Failed to create test vote: %v", err)
		}
	}

	_, err := conn.Exec(`
		INSERT INTO students (student_id, has_voted, vote_timestamp)
		VALUES ($1, 1, $2)
	`, studentID, now)
	if err != nil {
		t.Fatalf("Failed to mark test student voted: %v", err)
	}
}

// AdminToken issues a valid admin session token for tests
func AdminToken(t *testing.T, cfg cliparse.Config, name string) string {
	t.Helper()

	token, err := auth.IssueAdminToken(name, cfg.JWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue test admin token: %v", err)
	}
	return token
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
