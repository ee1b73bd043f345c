// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"

	"github.com/gnames/gedgraph/pkg/db"
	"github.com/gnames/gedgraph/pkg/schema"
)

// manager implements the db.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) db.SchemaManager {
	return &manager{operator: op}
}

// Create creates the initial database schema using
// GORM AutoMigrate. Also adds lower-case name indexes
// for case-insensitive person lookup.
func (m *manager) Create(ctx context.Context) error {
	gormDB := m.operator.DB()
	if gormDB == nil {
		return NotConnectedError()
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return CreateSchemaError(err)
	}

	return m.nameIndexes(ctx)
}

// Migrate updates the database schema to the latest version
// using GORM AutoMigrate.
func (m *manager) Migrate(ctx context.Context) error {
	gormDB := m.operator.DB()
	if gormDB == nil {
		return NotConnectedError()
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}

	return m.nameIndexes(ctx)
}

// nameIndexes creates expression indexes on lower-cased
// name columns. The syntax is shared by PostgreSQL and
// SQLite.
func (m *manager) nameIndexes(ctx context.Context) error {
	gormDB := m.operator.DB().WithContext(ctx)

	type columnDef struct {
		table, column string
	}

	columns := []columnDef{
		{"persons", "surname"},
		{"persons", "given_names"},
		{"persons", "nickname"},
	}

	for _, col := range columns {
		q := formatIndexSQL(col.table, col.column)
		if err := gormDB.Exec(q).Error; err != nil {
			return IndexError(col.table, col.column, err)
		}
	}

	return nil
}
