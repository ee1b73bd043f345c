package db

import (
	"context"

	"github.com/gnames/gedgraph/pkg/config"
	"gorm.io/gorm"
)

// Supported values of config.DatabaseConfig.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// SQLiteLower is a Unicode-aware lower() registered on the sqlite
// driver. The built-in lower() of sqlite folds ASCII letters only.
const SQLiteLower = "unicode_lower"

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management and exposes a GORM handle
// for the schema manager, the store and the importer.
type Operator interface {
	// Connect opens the database described by the configuration.
	Connect(context.Context, *config.Config) error

	// Close releases database connections.
	Close() error

	// DB returns the GORM handle, nil before Connect.
	DB() *gorm.DB

	// Driver returns "sqlite" or "postgres".
	Driver() string

	// HasTables checks if the database has any tables.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables.
	// Used during schema initialization when overwriting existing data.
	DropAllTables(ctx context.Context) error
}
