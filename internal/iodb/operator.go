// Package iodb implements database operations for PostgreSQL (pgxpool)
// and SQLite. This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"

	"github.com/gnames/gedgraph/pkg/config"
	"github.com/gnames/gedgraph/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewOperator creates an operator for the configured driver (without
// connecting).
func NewOperator(cfg *config.Config) (db.Operator, error) {
	switch cfg.Database.Driver {
	case db.DriverSQLite:
		return NewSQLiteOperator(), nil
	case db.DriverPostgres:
		return NewPgxOperator(), nil
	default:
		return nil, UnknownDriverError(cfg.Database.Driver)
	}
}

// Open creates and connects the operator for the configured driver.
func Open(ctx context.Context, cfg *config.Config) (db.Operator, error) {
	op, err := NewOperator(cfg)
	if err != nil {
		return nil, err
	}
	if err = op.Connect(ctx, cfg); err != nil {
		return nil, err
	}
	return op, nil
}

// gormConfig keeps GORM quiet, errors are returned to callers and
// logged by them.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
}
