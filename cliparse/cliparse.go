package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/class-ballot/models"
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	JWTSecret       string
	AdminPassword   string
	StudentPassword string
	ElectionFile    string
	Election        models.Election
}

// DefaultElection is the election configuration used when no YAML file
// is supplied. It matches the AIE class elections this tool was built for.
func DefaultElection() models.Election {
	return models.Election{
		Name: "AIE Class Elections",
		Categories: []string{
			"Hostler Boy",
			"Dayscholar Boy",
			"Hostler Girl",
			"Dayscholar Girl",
		},
		IDScheme: models.IDScheme{
			Prefix: "AIE24",
			Digits: 3,
			Min:    201,
			Max:    261,
		},
	}
}

// ParseFlags validates flags and fills in environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("class-ballot", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.ElectionFile, "e", "", "Election config YAML file")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "Admin session signing secret (prefer env)")
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Admin password or bcrypt hash (prefer env)")
	fs.StringVar(&cfg.StudentPassword, "student-password", "", "Student password or bcrypt hash (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3641 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "election.db"
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if cfg.AdminPassword == "" {
		cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	}
	if cfg.AdminPassword == "" {
		return Config{}, errors.New("ADMIN_PASSWORD required")
	}

	if cfg.StudentPassword == "" {
		cfg.StudentPassword = os.Getenv("STUDENT_PASSWORD")
	}
	if cfg.StudentPassword == "" {
		return Config{}, errors.New("STUDENT_PASSWORD required")
	}

	if cfg.ElectionFile == "" {
		cfg.ElectionFile = os.Getenv("ELECTION_CONFIG")
	}

	election, err := LoadElection(cfg.ElectionFile)
	if err != nil {
		return Config{}, err
	}
	cfg.Election = election

	return cfg, nil
}

// LoadElection reads the election YAML file, or returns the default
// election when path is empty. Missing fields fall back to defaults so
// a file can override just the categories or just the ID scheme.
func LoadElection(path string) (models.Election, error) {
	election := DefaultElection()
	if path == "" {
		return election, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to open election config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&election); err != nil {
		return models.Election{}, fmt.Errorf("failed to parse election config: %w", err)
	}

	if err := validateElection(election); err != nil {
		return models.Election{}, err
	}
	return election, nil
}

func validateElection(e models.Election) error {
	if len(e.Categories) == 0 {
		return errors.New("election config: at least one category required")
	}
	seen := make(map[string]bool, len(e.Categories))
	for _, c := range e.Categories {
		if c == "" {
			return errors.New("election config: empty category name")
		}
		if seen[c] {
			return fmt.Errorf("election config: duplicate category %q", c)
		}
		seen[c] = true
	}
	s := e.IDScheme
	if s.Prefix == "" {
		return errors.New("election config: id_scheme.prefix required")
	}
	if s.Digits <= 0 {
		return errors.New("election config: id_scheme.digits must be positive")
	}
	if s.Min < 0 || s.Max < s.Min {
		return fmt.Errorf("election config: invalid id range [%d, %d]", s.Min, s.Max)
	}
	return nil
}
