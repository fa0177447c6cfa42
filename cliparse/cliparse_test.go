// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	os.Setenv("JWT_SECRET", "test-jwt")
	os.Setenv("ADMIN_PASSWORD", "test-admin")
	os.Setenv("STUDENT_PASSWORD", "test-student")
	t.Cleanup(os.Clearenv)
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequiredEnv(t)
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("DATABASE_TYPE", "postgres")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.JWTSecret != "test-jwt" {
		t.Errorf("expected JWT secret from env, got %s", cfg.JWTSecret)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	setRequiredEnv(t)
	os.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "file:test.db" {
		t.Errorf("expected file:test.db, got %s", cfg.DatabaseURL)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3641 {
		t.Errorf("expected default port 3641, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "election.db" {
		t.Errorf("expected default database election.db, got %s", cfg.DatabaseURL)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default type sqlite, got %s", cfg.DatabaseType)
	}
	if len(cfg.Election.Categories) != 4 {
		t.Errorf("expected 4 default categories, got %d", len(cfg.Election.Categories))
	}
}

func TestParseFlags_MissingSecrets(t *testing.T) {
	os.Clearenv()

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error when JWT_SECRET missing")
	}

	os.Setenv("JWT_SECRET", "s")
	t.Cleanup(os.Clearenv)
	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error when ADMIN_PASSWORD missing")
	}

	os.Setenv("ADMIN_PASSWORD", "a")
	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error when STUDENT_PASSWORD missing")
	}
}

func TestParseFlags_BadDatabaseType(t *testing.T) {
	setRequiredEnv(t)

	if _, err := ParseFlags([]string{"-t", "mysql"}); err == nil {
		t.Error("expected error for unsupported database type")
	}
}

func TestLoadElection_Default(t *testing.T) {
	e, err := LoadElection("")
	if err != nil {
		t.Fatal(err)
	}
	if e.Name != "AIE Class Elections" {
		t.Errorf("unexpected default name %q", e.Name)
	}
	if e.IDScheme.Prefix != "AIE24" {
		t.Errorf("unexpected default prefix %q", e.IDScheme.Prefix)
	}
}

func TestLoadElection_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "election.yaml")
	content := `name: House Captains
categories:
  - Red House
  - Blue House
id_scheme:
  prefix: STU
  digits: 2
  min: 1
  max: 40
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	e, err := LoadElection(path)
	if err != nil {
		t.Fatal(err)
	}
	if e.Name != "House Captains" {
		t.Errorf("expected House Captains, got %q", e.Name)
	}
	if len(e.Categories) != 2 {
		t.Errorf("expected 2 categories, got %d", len(e.Categories))
	}
	if e.IDScheme.Max != 40 {
		t.Errorf("expected max 40, got %d", e.IDScheme.Max)
	}
}

func TestLoadElection_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "election.yaml")
	content := "name: Renamed Election\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	e, err := LoadElection(path)
	if err != nil {
		t.Fatal(err)
	}
	if e.Name != "Renamed Election" {
		t.Errorf("expected Renamed Election, got %q", e.Name)
	}
	// Unset fields keep the defaults.
	if len(e.Categories) != 4 {
		t.Errorf("expected default categories preserved, got %d", len(e.Categories))
	}
}

func TestLoadElection_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"duplicate category", "categories: [A, A]\n"},
		{"empty category", "categories: [A, \"\"]\n"},
		{"bad range", "id_scheme: {prefix: X, digits: 2, min: 50, max: 10}\n"},
		{"missing prefix", "id_scheme: {prefix: \"\", digits: 2, min: 1, max: 10}\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "election.yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadElection(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
