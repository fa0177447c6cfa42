// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "testing"

func aieScheme() IDScheme {
	return IDScheme{Prefix: "AIE24", Digits: 3, Min: 201, Max: 261}
}

func TestIDSchemeValid(t *testing.T) {
	scheme := aieScheme()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"lower bound", "AIE24201", true},
		{"upper bound", "AIE24261", true},
		{"middle of range", "AIE24230", true},
		{"lowercase normalized", "aie24207", true},
		{"surrounding whitespace", "  AIE24255  ", true},
		{"below range", "AIE24200", false},
		{"above range", "AIE24262", false},
		{"missing digits", "AIE24", false},
		{"too few digits", "AIE2420", false},
		{"too many digits", "AIE242011", false},
		{"wrong prefix", "XYZ24201", false},
		{"sign instead of digit", "AIE24+61", false},
		{"internal space", "AIE24 20", false},
		{"empty", "", false},
		{"prefix only lowercase", "aie24", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scheme.Valid(tt.input); got != tt.want {
				t.Errorf("Valid(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIDSchemeNormalize(t *testing.T) {
	scheme := aieScheme()

	if got := scheme.Normalize("  aie24207\n"); got != "AIE24207" {
		t.Errorf("Normalize returned %q, want AIE24207", got)
	}
}

func TestIDSchemeEligibleCount(t *testing.T) {
	// 201..261 inclusive
	if got := aieScheme().EligibleCount(); got != 61 {
		t.Errorf("EligibleCount = %d, want 61", got)
	}

	single := IDScheme{Prefix: "X", Digits: 1, Min: 5, Max: 5}
	if got := single.EligibleCount(); got != 1 {
		t.Errorf("EligibleCount = %d, want 1", got)
	}
}

func TestIDSchemeDescribe(t *testing.T) {
	if got := aieScheme().Describe(); got != "AIE24201 to AIE24261" {
		t.Errorf("Describe = %q", got)
	}

	padded := IDScheme{Prefix: "ST", Digits: 4, Min: 1, Max: 50}
	if got := padded.Describe(); got != "ST0001 to ST0050" {
		t.Errorf("Describe = %q", got)
	}
}

func TestElectionValidCategory(t *testing.T) {
	election := Election{Categories: []string{"Hostler Boy", "Dayscholar Girl"}}

	if !election.ValidCategory("Hostler Boy") {
		t.Error("expected Hostler Boy to be valid")
	}
	if election.ValidCategory("Hostler boy") {
		t.Error("category matching must be exact")
	}
	if election.ValidCategory("") {
		t.Error("empty category must be invalid")
	}
}
