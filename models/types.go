// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Admin action constants
const (
	ActionAdminLogin      = "ADMIN_LOGIN"
	ActionAddCandidate    = "ADD_CANDIDATE"
	ActionDeleteCandidate = "DELETE_CANDIDATE"
	ActionPublishResults  = "PUBLISH_RESULTS"
	ActionResetElection   = "RESET_ELECTION"
)

// IDScheme describes the accepted student ID format: a fixed prefix
// followed by a fixed number of digits whose value falls in [Min, Max].
type IDScheme struct {
	Prefix string `yaml:"prefix"`
	Digits int    `yaml:"digits"`
	Min    int    `yaml:"min"`
	Max    int    `yaml:"max"`
}

// Normalize trims whitespace and upper-cases a raw student ID.
func (s IDScheme) Normalize(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// Valid reports whether id (after normalization) is an eligible student ID.
func (s IDScheme) Valid(id string) bool {
	id = s.Normalize(id)
	if !strings.HasPrefix(id, s.Prefix) {
		return false
	}
	rest := id[len(s.Prefix):]
	if len(rest) != s.Digits {
		return false
	}
	n := 0
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
		n = n*10 + int(r-'0')
	}
	return n >= s.Min && n <= s.Max
}

// EligibleCount is the number of student IDs the scheme accepts.
func (s IDScheme) EligibleCount() int {
	return s.Max - s.Min + 1
}

// Describe renders the accepted range for error messages,
// e.g. "AIE24201 to AIE24261".
func (s IDScheme) Describe() string {
	return fmt.Sprintf("%s%0*d to %s%0*d", s.Prefix, s.Digits, s.Min, s.Prefix, s.Digits, s.Max)
}

// Election is the injected election configuration: the fixed category
// set and the student ID scheme. The ledger depends on these values but
// never defines them.
type Election struct {
	Name       string   `yaml:"name"`
	Categories []string `yaml:"categories"`
	IDScheme   IDScheme `yaml:"id_scheme"`
}

// ValidCategory reports whether category is one of the configured set.
func (e Election) ValidCategory(category string) bool {
	for _, c := range e.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Request types

type VerifyRequest struct {
	StudentID string `json:"student_id"`
	Password  string `json:"password"`
}

type SubmitBallotRequest struct {
	StudentID string `json:"student_id"`
	Password  string `json:"password"`
	// category -> candidate name, one entry per category
	Selections map[string]string `json:"selections"`
}

type AdminLoginRequest struct {
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type CandidateRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Response types

type VerifyResponse struct {
	StudentID string `json:"student_id"`
	Eligible  bool   `json:"eligible"`
}

type SubmitBallotResponse struct {
	StudentID string `json:"student_id"`
	Message   string `json:"message"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

type StudentStatusResponse struct {
	StudentID string `json:"student_id"`
	HasVoted  bool   `json:"has_voted"`
}

type CategoryCandidates struct {
	Category   string   `json:"category"`
	Candidates []string `json:"candidates"`
}

type ElectionResponse struct {
	Name       string               `json:"name"`
	Categories []CategoryCandidates `json:"categories"`
	Published  bool                 `json:"published"`
}

type ResultsResponse struct {
	Results []CategoryResult `json:"results"`
	Status  PublishStatus    `json:"status"`
}

type VoteCountsResponse struct {
	Counts []VoteCount `json:"counts"`
}

type AdminLogsResponse struct {
	Logs []AdminLogEntry `json:"logs"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type Candidate struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	AddedAt  time.Time `json:"added_at"`
	Votes    int       `json:"votes"`
}

type VoteCount struct {
	Category  string `json:"category"`
	Candidate string `json:"candidate"`
	Votes     int    `json:"votes"`
}

// CategoryResult holds every candidate tied at the maximum vote count
// for one category. Ties are surfaced, never broken.
type CategoryResult struct {
	Category string   `json:"category"`
	Winners  []string `json:"winners"`
	Votes    int      `json:"votes"`
}

type PublishStatus struct {
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	PublishedBy *string    `json:"published_by,omitempty"`
}

type AdminLogEntry struct {
	ID        string          `json:"id"`
	Admin     string          `json:"admin"`
	Action    string          `json:"action"`
	Details   json.RawMessage `json:"details,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type VotingStats struct {
	Eligible       int            `json:"eligible"`
	Voted          int            `json:"voted"`
	Pending        int            `json:"pending"`
	TurnoutPercent float64        `json:"turnout_percent"`
	CategoryCounts map[string]int `json:"category_counts"`
}
