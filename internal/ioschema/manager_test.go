package ioschema_test

import (
	"context"
	"testing"

	"github.com/gnames/gedgraph/internal/iodb"
	"github.com/gnames/gedgraph/internal/ioschema"
	"github.com/gnames/gedgraph/internal/iotesting"
	"github.com/gnames/gedgraph/pkg/db"
	"github.com/gnames/gedgraph/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestManager_ImplementsInterface verifies manager
// implements db.SchemaManager interface.
func TestManager_ImplementsInterface(t *testing.T) {
	op := iodb.NewSQLiteOperator()
	var _ db.SchemaManager = ioschema.NewManager(op)
}

func TestManager_NotConnected(t *testing.T) {
	mgr := ioschema.NewManager(iodb.NewSQLiteOperator())
	assert.Error(t, mgr.Create(context.Background()))
	assert.Error(t, mgr.Migrate(context.Background()))
}

func TestManager_CreateAndMigrate(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.SQLiteConfig(t)
	op, err := iodb.Open(ctx, cfg)
	require.NoError(t, err)
	defer op.Close()

	mgr := ioschema.NewManager(op)
	require.NoError(t, mgr.Create(ctx))

	migrator := op.DB().Migrator()
	for _, m := range schema.AllModels() {
		assert.True(t, migrator.HasTable(m))
	}
	assert.True(t, migrator.HasIndex(&schema.Source{}, "idx_sources_file_hash"))
	assert.True(t, migrator.HasIndex(&schema.Relationship{}, "idx_relationships_primary"))
	assert.True(t, migrator.HasIndex(&schema.Person{}, "idx_persons_surname_lower"))

	require.NoError(t, mgr.Migrate(ctx), "migration is idempotent")
}

func TestManager_PrimaryRelationshipUnique(t *testing.T) {
	op, _ := iotesting.OpenSQLite(t)
	gdb := op.DB()

	src := schema.Source{ID: "s1", Name: "x", FileHash: "h", Status: schema.StatusCompleted}
	require.NoError(t, gdb.Create(&src).Error)
	for _, id := range []string{"a", "b"} {
		require.NoError(t, gdb.Create(&schema.Person{ID: id, SourceID: "s1", Gender: "U"}).Error)
	}

	rel := func(id string, primary bool) *schema.Relationship {
		return &schema.Relationship{
			ID: id, SourceID: "s1", Person1ID: "a", Person2ID: "b",
			Type: schema.RelSpouse, IsPrimary: primary,
		}
	}
	require.NoError(t, gdb.Create(rel("r1", true)).Error)
	assert.Error(t, gdb.Create(rel("r2", true)).Error)
	assert.NoError(t, gdb.Create(rel("r3", false)).Error)
	assert.NoError(t, gdb.Create(rel("r4", false)).Error)
}
