package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gnames/gedgraph/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "gedgraph"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "gedgraph"),
		},
		{
			msg: "data dir",
			fn:  config.DataDir,
			res: filepath.Join(tempHome, ".local", "share", "gedgraph"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "gedgraph", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "gedgraph", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "gedgraph", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)

		assert.Equal(t, 50*1024*1024, cfg.Import.MaxFileSize)
		assert.False(t, cfg.Import.WithProgress)

		assert.Equal(t, 10, cfg.Query.MaxGenerations)
		assert.Equal(t, 3, cfg.Query.DefaultGenerations)
		assert.Equal(t, 6, cfg.Query.PathMaxDepth)
		assert.Equal(t, 20, cfg.Query.SearchLimit)

		assert.Equal(t, 8080, cfg.Server.Port)

		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	})
}

func TestSQLitePath(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/user")})
	assert.Equal(t,
		filepath.Join("/home/user", ".local", "share", "gedgraph", "gedgraph.sqlite"),
		cfg.SQLitePath())

	cfg.Update([]config.Option{config.OptDatabaseSQLitePath("/tmp/tree.db")})
	assert.Equal(t, "/tmp/tree.db", cfg.SQLitePath())
}

func TestOptionDatabaseHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid host",
			input:    "db.example.com",
			expected: "db.example.com",
		},
		{
			name:     "trims whitespace",
			input:    "  db.example.com  ",
			expected: "db.example.com",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "localhost",
		},
		{
			name:     "ignores whitespace-only",
			input:    "   ",
			expected: "localhost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseHost(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Host)
		})
	}
}

func TestOptionDatabaseDriver(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets postgres", "postgres", "postgres"},
		{"normalizes case", "  PostgreS ", "postgres"},
		{"sets sqlite", "sqlite", "sqlite"},
		{"ignores unknown driver", "mysql", "sqlite"},
		{"ignores empty", "", "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabaseDriver(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.Driver)
		})
	}
}

func TestOptionDatabaseSSLMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets require", "require", "require"},
		{"sets verify-full", "verify-full", "verify-full"},
		{"normalizes case", "DISABLE", "disable"},
		{"ignores invalid mode", "sometimes", "disable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabaseSSLMode(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.SSLMode)
		})
	}
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets debug", "debug", "debug"},
		{"sets error", "error", "error"},
		{"normalizes case", " WARN ", "warn"},
		{"ignores invalid level", "verbose", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogLevel(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Level)
		})
	}
}

func TestOptionLogDestination(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets stdout", "stdout", "stdout"},
		{"sets stderr", "stderr", "stderr"},
		{"ignores invalid", "syslog", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogDestination(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Destination)
		})
	}
}

func TestOptionQueryLimits(t *testing.T) {
	tests := []struct {
		name  string
		opt   config.Option
		field func(*config.Config) int
		want  int
	}{
		{
			name:  "max generations",
			opt:   config.OptQueryMaxGenerations(15),
			field: func(c *config.Config) int { return c.Query.MaxGenerations },
			want:  15,
		},
		{
			name:  "max generations rejects zero",
			opt:   config.OptQueryMaxGenerations(0),
			field: func(c *config.Config) int { return c.Query.MaxGenerations },
			want:  10,
		},
		{
			name:  "path max depth",
			opt:   config.OptQueryPathMaxDepth(8),
			field: func(c *config.Config) int { return c.Query.PathMaxDepth },
			want:  8,
		},
		{
			name:  "search limit rejects negative",
			opt:   config.OptQuerySearchLimit(-5),
			field: func(c *config.Config) int { return c.Query.SearchLimit },
			want:  20,
		},
		{
			name:  "max file size",
			opt:   config.OptImportMaxFileSize(1024),
			field: func(c *config.Config) int { return c.Import.MaxFileSize },
			want:  1024,
		},
		{
			name:  "jobs number rejects zero",
			opt:   config.OptJobsNumber(0),
			field: func(c *config.Config) int { return c.JobsNumber },
			want:  runtime.NumCPU(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt})
			assert.Equal(t, tt.want, tt.field(cfg))
		})
	}
}

func TestMultipleOptions(t *testing.T) {
	t.Run("applies multiple options in order", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptDatabaseDriver("postgres"),
			config.OptDatabaseHost("db.local"),
			config.OptServerPort(9000),
		})
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "db.local", cfg.Database.Host)
		assert.Equal(t, 9000, cfg.Server.Port)
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptServerPort(9000),
			config.OptServerPort(9001),
		})
		assert.Equal(t, 9001, cfg.Server.Port)
	})
}

func TestToOptions(t *testing.T) {
	t.Run("converts config to options correctly", func(t *testing.T) {
		original := config.New()
		opts := []config.Option{
			config.OptDatabaseDriver("postgres"),
			config.OptDatabaseHost("test.host.com"),
			config.OptDatabasePort(5433),
			config.OptDatabaseUser("testuser"),
			config.OptDatabasePassword("testpass"),
			config.OptDatabaseDatabase("testdb"),
			config.OptDatabaseSSLMode("require"),
			config.OptDatabaseSQLitePath("/tmp/x.sqlite"),
			config.OptImportMaxFileSize(2048),
			config.OptImportWithProgress(true),
			config.OptQueryMaxGenerations(12),
			config.OptQueryDefaultGenerations(4),
			config.OptQueryPathMaxDepth(9),
			config.OptQuerySearchLimit(50),
			config.OptServerPort(9999),
			config.OptLogLevel("debug"),
			config.OptLogFormat("text"),
			config.OptLogDestination("stdout"),
			config.OptJobsNumber(8),
		}
		original.Update(opts)

		newCfg := config.New()
		newCfg.Update(original.ToOptions())

		assert.Equal(t, original.Database, newCfg.Database)
		assert.Equal(t, original.Import, newCfg.Import)
		assert.Equal(t, original.Query, newCfg.Query)
		assert.Equal(t, original.Server, newCfg.Server)
		assert.Equal(t, original.Log, newCfg.Log)
		assert.Equal(t, original.JobsNumber, newCfg.JobsNumber)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/custom/home"),
			config.OptImportSourceName("Smith family"),
		})

		newCfg := config.New()
		newCfg.Update(cfg.ToOptions())

		assert.Equal(t, "", newCfg.HomeDir)
		assert.Equal(t, "", newCfg.Import.SourceName)
	})
}
