package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate, parents
// before dependents.
func AllModels() []any {
	return []any{
		&Source{},
		&Place{},
		&Person{},
		&Relationship{},
		&Event{},
	}
}

// PrimaryRelationshipIndex enforces a single primary relationship of a
// type per ordered pair of persons. It is valid for PostgreSQL and
// SQLite.
const PrimaryRelationshipIndex = `CREATE UNIQUE INDEX IF NOT EXISTS
  idx_relationships_primary
  ON relationships (person1_id, person2_id, relationship_type)
  WHERE is_primary`

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return err
	}
	return db.Exec(PrimaryRelationshipIndex).Error
}
