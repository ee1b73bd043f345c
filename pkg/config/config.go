// Package config provides configuration management for gedgraph.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: driver, host, port, user, password, database, ssl_mode,
//     sqlite_path
//   - Import: max_file_size, with_progress
//   - Query: max_generations, default_generations, path_max_depth,
//     search_limit
//   - Server: port
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Import.SourceName (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GEDGRAPH_ prefix with underscores for nesting:
//
//	GEDGRAPH_DATABASE_DRIVER=postgres
//	GEDGRAPH_DATABASE_HOST=localhost
//	GEDGRAPH_QUERY_MAX_GENERATIONS=10
//	GEDGRAPH_LOG_LEVEL=info
package config

import (
	"runtime"
)

// Config represents the complete gedgraph configuration.
type Config struct {
	// Database contains connection settings for the relational store.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Import contains settings for GEDCOM file ingestion.
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	// Query contains limits for traversal and search requests.
	Query QueryConfig `mapstructure:"query" yaml:"query"`

	// Server contains HTTP server settings.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers used to extract
	// GEDCOM records. Defaults to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `yaml:"-"`
}

// DatabaseConfig contains database connection parameters.
type DatabaseConfig struct {
	// Driver selects the store backend.
	// Valid values: "sqlite", "postgres".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// SQLitePath is the path to the sqlite database file. When empty,
	// the file is created in the data directory under HomeDir.
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
}

// ImportConfig contains settings for GEDCOM imports.
type ImportConfig struct {
	// MaxFileSize is the upper limit for an uploaded file in bytes.
	MaxFileSize int `mapstructure:"max_file_size" yaml:"max_file_size"`

	// WithProgress shows a progress bar during the import of individuals.
	WithProgress bool `mapstructure:"with_progress" yaml:"with_progress"`

	// SourceName overrides the name of a newly created source. When empty
	// the file name is used. Runtime-only.
	SourceName string `mapstructure:"-" yaml:"-"`
}

// QueryConfig limits traversal and search requests.
type QueryConfig struct {
	// MaxGenerations is the largest generation count a tree, ancestors or
	// descendants request may ask for.
	MaxGenerations int `mapstructure:"max_generations" yaml:"max_generations"`

	// DefaultGenerations is used when a request does not set generations.
	DefaultGenerations int `mapstructure:"default_generations" yaml:"default_generations"`

	// PathMaxDepth is the default depth cap for relationship path search.
	PathMaxDepth int `mapstructure:"path_max_depth" yaml:"path_max_depth"`

	// SearchLimit is the default number of search results.
	SearchLimit int `mapstructure:"search_limit" yaml:"search_limit"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int `mapstructure:"port" yaml:"port"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:   "sqlite",
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "gedgraph",
			SSLMode:  "disable",
		},
		Import: ImportConfig{
			MaxFileSize: 50 * 1024 * 1024,
		},
		Query: QueryConfig{
			MaxGenerations:     10,
			DefaultGenerations: 3,
			PathMaxDepth:       6,
			SearchLimit:        20,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
