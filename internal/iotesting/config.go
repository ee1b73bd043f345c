// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/gnames/gedgraph/internal/iodb"
	"github.com/gnames/gedgraph/pkg/config"
	"github.com/gnames/gedgraph/pkg/db"
	"github.com/gnames/gedgraph/pkg/schema"
)

const (
	// TestDatabaseName is the PostgreSQL database name used for all
	// integration tests. This ensures tests never accidentally run against
	// production databases.
	TestDatabaseName = "gedgraph_test"
)

// SQLiteConfig returns a configuration with a fresh home directory and a
// sqlite database inside it. Everything is removed when the test ends.
func SQLiteConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptDatabaseDriver(db.DriverSQLite),
		config.OptLogDestination("stderr"),
	})
	return cfg
}

// PostgresConfig returns a configuration for PostgreSQL integration
// tests. Connection settings can be overridden with GEDGRAPH_DATABASE_*
// environment variables; the database name is always TestDatabaseName.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.PostgresConfig(t)
//	    // ... use cfg for database operations
//	}
func PostgresConfig(t *testing.T) *config.Config {
	t.Helper()
	opts := []config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptDatabaseDriver(db.DriverPostgres),
		config.OptDatabaseDatabase(TestDatabaseName),
	}
	if v := os.Getenv("GEDGRAPH_DATABASE_HOST"); v != "" {
		opts = append(opts, config.OptDatabaseHost(v))
	}
	if v := os.Getenv("GEDGRAPH_DATABASE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			opts = append(opts, config.OptDatabasePort(port))
		}
	}
	if v := os.Getenv("GEDGRAPH_DATABASE_USER"); v != "" {
		opts = append(opts, config.OptDatabaseUser(v))
	}
	if v := os.Getenv("GEDGRAPH_DATABASE_PASSWORD"); v != "" {
		opts = append(opts, config.OptDatabasePassword(v))
	}
	cfg := config.New()
	cfg.Update(opts)
	return cfg
}

// OpenSQLite connects to a new sqlite database with the full schema.
// The operator is closed when the test ends.
func OpenSQLite(t *testing.T) (db.Operator, *config.Config) {
	t.Helper()
	cfg := SQLiteConfig(t)
	op, err := iodb.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { op.Close() })

	if err = schema.Migrate(op.DB()); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}
	return op, cfg
}

// TestdataPath returns the path to a file in the repository testdata
// directory.
func TestdataPath(name string) string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "testdata", name)
}

// ReadTestdata reads a file from the repository testdata directory.
func ReadTestdata(t *testing.T, name string) []byte {
	t.Helper()
	res, err := os.ReadFile(TestdataPath(name))
	if err != nil {
		t.Fatalf("Failed to read %s: %v", name, err)
	}
	return res
}
