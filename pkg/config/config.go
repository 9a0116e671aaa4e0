package config

import (
	"fmt"
	"math"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the ESG scoring engine.
// Configuration can come from a YAML file (config.yaml) or environment
// variables. Environment variables always override YAML values. Secrets
// (the database password) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// MigrationsPath is the directory containing SQL migrations.
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`

	// Scoring weights and thresholds
	Scoring ScoringConfig `yaml:"scoring"`

	// Watchlist sourcing
	Watchlist WatchlistConfig `yaml:"watchlist"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"esg"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"esg_engine"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

// ScoringConfig holds the base-score pillar weights and the fuzzy-match
// threshold for watchlist lookups. The default weight set is the canonical
// one; any override must still sum to 1.0.
type ScoringConfig struct {
	FinancialWeight     float64 `yaml:"financial_weight" env:"SCORING_FINANCIAL_WEIGHT" env-default:"0.15"`
	EnvironmentalWeight float64 `yaml:"environmental_weight" env:"SCORING_ENVIRONMENTAL_WEIGHT" env-default:"0.30"`
	SocialWeight        float64 `yaml:"social_weight" env:"SCORING_SOCIAL_WEIGHT" env-default:"0.30"`
	GovernanceWeight    float64 `yaml:"governance_weight" env:"SCORING_GOVERNANCE_WEIGHT" env-default:"0.25"`
	MatchThreshold      float64 `yaml:"match_threshold" env:"SCORING_MATCH_THRESHOLD" env-default:"0.8"`
}

// WatchlistConfig selects where the supplier watchlist is sourced from.
// "table" reads the supplier_watchlist table; "file" reads a YAML snapshot,
// which is how externally scraped blacklists are fed in without the engine
// knowing about scraping.
type WatchlistConfig struct {
	Source   string `yaml:"source" env:"WATCHLIST_SOURCE" env-default:"table"`
	FilePath string `yaml:"file_path" env:"WATCHLIST_FILE_PATH" env-default:"watchlist.yaml"`
}

// Load reads configuration from config.yaml with environment variable
// overrides. The version parameter is injected at build time and set on the
// returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the scoring and watchlist configuration.
func (c *Config) Validate() error {
	if err := c.Scoring.Validate(); err != nil {
		return err
	}

	switch c.Watchlist.Source {
	case "table", "file":
	default:
		return fmt.Errorf("watchlist source must be \"table\" or \"file\", got %q", c.Watchlist.Source)
	}

	return nil
}

// Validate ensures the pillar weights form a proper blend.
func (s *ScoringConfig) Validate() error {
	sum := s.FinancialWeight + s.EnvironmentalWeight + s.SocialWeight + s.GovernanceWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("pillar weights must sum to 1.0, got %v", sum)
	}

	if s.MatchThreshold < 0 || s.MatchThreshold > 1 {
		return fmt.Errorf("match threshold must be in [0,1], got %v", s.MatchThreshold)
	}

	return nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
