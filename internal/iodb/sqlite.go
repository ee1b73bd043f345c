package iodb

import (
	"context"
	"database/sql/driver"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/gedgraph/pkg/config"
	"github.com/gnames/gedgraph/pkg/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	msqlite "modernc.org/sqlite"
)

func init() {
	err := msqlite.RegisterDeterministicScalarFunction(
		db.SQLiteLower, 1, unicodeLower,
	)
	if err != nil {
		panic(err)
	}
}

// unicodeLower lowercases text values, NULL stays NULL.
func unicodeLower(
	_ *msqlite.FunctionContext,
	args []driver.Value,
) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// sqlitePragmas turn on foreign keys and wait for locks instead of
// failing with SQLITE_BUSY.
const sqlitePragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// sqliteOperator implements db.Operator over a single sqlite file using
// the pure Go modernc driver.
type sqliteOperator struct {
	path   string
	gormDB *gorm.DB
}

// NewSQLiteOperator creates a new sqlite operator (without connecting).
func NewSQLiteOperator() db.Operator {
	return &sqliteOperator{}
}

// Connect opens or creates the sqlite file from cfg.SQLitePath().
func (s *sqliteOperator) Connect(
	_ context.Context,
	cfg *config.Config,
) error {
	path := cfg.SQLitePath()
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return SQLiteOpenError(path, err)
		}
	}

	gormDB, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        "file:" + path + sqlitePragmas,
	}, gormConfig())
	if err != nil {
		return SQLiteOpenError(path, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return SQLiteOpenError(path, err)
	}
	// sqlite allows one writer; a single connection also keeps an
	// in-memory database alive for the life of the operator.
	sqlDB.SetMaxOpenConns(1)
	if err = sqlDB.Ping(); err != nil {
		return SQLiteOpenError(path, err)
	}

	s.path = path
	s.gormDB = gormDB
	return nil
}

// Close releases the database file.
func (s *sqliteOperator) Close() error {
	if s.gormDB == nil {
		return nil
	}
	sqlDB, err := s.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *sqliteOperator) DB() *gorm.DB {
	return s.gormDB
}

func (s *sqliteOperator) Driver() string {
	return db.DriverSQLite
}

// HasTables checks if the database file has any tables.
func (s *sqliteOperator) HasTables(ctx context.Context) (bool, error) {
	if s.gormDB == nil {
		return false, NotConnectedError()
	}
	tables, err := s.gormDB.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		return false, TableCheckError(err)
	}
	return len(tables) > 0, nil
}

// DropAllTables drops all tables, dependents first.
func (s *sqliteOperator) DropAllTables(ctx context.Context) error {
	if s.gormDB == nil {
		return NotConnectedError()
	}
	gdb := s.gormDB.WithContext(ctx)
	tables, err := gdb.Migrator().GetTables()
	if err != nil {
		return TableCheckError(err)
	}

	if err = gdb.Exec("PRAGMA foreign_keys = OFF").Error; err != nil {
		return TableCheckError(err)
	}
	defer gdb.Exec("PRAGMA foreign_keys = ON")

	for _, table := range tables {
		if err := gdb.Migrator().DropTable(table); err != nil {
			return DropTableError(table, err)
		}
	}
	return nil
}
