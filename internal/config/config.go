package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Match    MatchConfig    `yaml:"match"`
	Inbox    InboxConfig    `yaml:"inbox"`
	Export   ExportConfig   `yaml:"export"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// CatalogConfig selects and tunes the music catalog backend.
type CatalogConfig struct {
	// Backend is "deezer" or "itunes".
	Backend string `yaml:"backend"`
	// SearchLimit is the maximum number of entities requested per
	// catalog search call.
	SearchLimit int `yaml:"search_limit"`
}

// MatchConfig holds fuzzy-matching tunables. The defaults were chosen
// against a corpus of real poster scans; treat them as starting points,
// not structural invariants.
type MatchConfig struct {
	// AcceptThreshold is the minimum accumulated score for a catalog
	// entity to be accepted as a match.
	AcceptThreshold float64 `yaml:"accept_threshold"`
	// DistanceCutoff is the normalized Levenshtein distance above which
	// no edit-distance component is awarded.
	DistanceCutoff float64 `yaml:"distance_cutoff"`
	// TrackCap is the maximum number of playlist entries per artist.
	TrackCap int `yaml:"track_cap"`
	// Workers bounds concurrent catalog searches during resolution.
	Workers int `yaml:"workers"`
}

// InboxConfig holds the OCR drop-directory watcher settings.
type InboxConfig struct {
	// Path is the directory watched for dropped .txt scans.
	// Empty disables the watcher.
	Path string `yaml:"path"`
}

// ExportConfig holds playlist export settings.
type ExportConfig struct {
	// Dir is the directory M3U exports are written to.
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Database: DatabaseConfig{
			Path: "/data/festline.db",
		},
		Catalog: CatalogConfig{
			Backend:     "deezer",
			SearchLimit: 5,
		},
		Match: MatchConfig{
			AcceptThreshold: 60.0,
			DistanceCutoff:  0.3,
			TrackCap:        3,
			Workers:         4,
		},
		Export: ExportConfig{
			Dir: "/data/exports",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads config from a YAML file (if it exists) and overrides with
// environment variables. Environment variables take precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) loadFromEnv() {
	if v := os.Getenv("FL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("FL_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("FL_CATALOG"); v != "" {
		c.Catalog.Backend = v
	}
	if v := os.Getenv("FL_INBOX_PATH"); v != "" {
		c.Inbox.Path = v
	}
	if v := os.Getenv("FL_EXPORT_DIR"); v != "" {
		c.Export.Dir = v
	}
	if v := os.Getenv("FL_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("FL_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("FL_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if c.Catalog.Backend != "deezer" && c.Catalog.Backend != "itunes" {
		return fmt.Errorf("catalog backend must be 'deezer' or 'itunes', got %q", c.Catalog.Backend)
	}
	if c.Catalog.SearchLimit < 1 {
		return fmt.Errorf("catalog search limit must be positive")
	}
	if c.Match.AcceptThreshold <= 0 {
		return fmt.Errorf("match accept threshold must be positive")
	}
	if c.Match.DistanceCutoff <= 0 || c.Match.DistanceCutoff > 1 {
		return fmt.Errorf("match distance cutoff must be in (0, 1]")
	}
	if c.Match.TrackCap < 1 {
		return fmt.Errorf("track cap must be positive")
	}
	if c.Match.Workers < 1 {
		c.Match.Workers = 1
	}
	return nil
}
