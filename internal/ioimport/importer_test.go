package ioimport

import (
	"context"
	"sync"
	"testing"

	"github.com/gnames/gedgraph/internal/iostore"
	"github.com/gnames/gedgraph/internal/iotesting"
	"github.com/gnames/gedgraph/pkg/errcode"
	"github.com/gnames/gedgraph/pkg/family"
	"github.com/gnames/gedgraph/pkg/graph"
	"github.com/gnames/gedgraph/pkg/schema"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func byXref(t *testing.T, gdb *gorm.DB, sourceID, xref string) schema.Person {
	t.Helper()
	var res schema.Person
	err := gdb.Where("source_id = ? AND gedcom_id = ?", sourceID, xref).
		Take(&res).Error
	require.NoError(t, err, xref)
	return res
}

func TestImportSimple(t *testing.T) {
	ctx := context.Background()
	op, cfg := iotesting.OpenSQLite(t)
	imp := New(cfg, op)

	data := iotesting.ReadTestdata(t, "simple.ged")
	res, err := imp.Import(ctx, data, "simple.ged", "")
	require.NoError(t, err)

	assert.Equal(t, 3, res.Stats.PersonsImported)
	assert.Equal(t, 3, res.Stats.RelationshipsImported)
	assert.Equal(t, 3, res.Stats.EventsImported)
	assert.Empty(t, res.Stats.Errors)

	src := res.Source
	assert.Equal(t, schema.StatusCompleted, src.Status)
	assert.Equal(t, "simple.ged", src.Name)
	assert.Equal(t, "simple.ged", src.Filename)
	assert.Equal(t, 3, src.PersonsCount)
	assert.Equal(t, 1, src.FamiliesCount)
	assert.Equal(t, 3, src.RelationshipsCount)
	assert.Len(t, src.FileHash, 64)
	assert.Equal(t, int64(len(data)), src.FileSize)

	store := iostore.New(op.DB())
	stats, err := store.SourceStatistics(ctx, src.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Relationships["spouse"])
	assert.Equal(t, 2, stats.Relationships["parent-child"])

	john := byXref(t, op.DB(), src.ID, "@I1@")
	jimmy := byXref(t, op.DB(), src.ID, "@I3@")
	rels, err := store.RelationshipsOf(ctx, jimmy.ID)
	require.NoError(t, err)
	require.Len(t, rels, 2)
	for _, r := range rels {
		assert.Equal(t, schema.RelParentChild, r.Type)
		assert.Equal(t, jimmy.ID, r.Person2ID)
		assert.Equal(t, schema.SubtypeBiological, r.Subtype)
		assert.True(t, r.IsPrimary)
	}
	assert.Equal(t, "John Smith", john.FullName())
	require.NotNil(t, john.BirthDate)
	assert.Equal(t, 1900, john.BirthDate.Year())
}

func TestImportHale(t *testing.T) {
	ctx := context.Background()
	op, cfg := iotesting.OpenSQLite(t)
	imp := New(cfg, op)
	gdb := op.DB()

	res, err := imp.Import(ctx, iotesting.ReadTestdata(t, "hale.ged"), "hale.ged", "Hale family")
	require.NoError(t, err)
	src := res.Source

	assert.Equal(t, "Hale family", src.Name)
	assert.Equal(t, 7, res.Stats.PersonsImported)
	assert.Equal(t, 9, res.Stats.RelationshipsImported)
	assert.Equal(t, 13, res.Stats.EventsImported)
	require.Len(t, res.Stats.Errors, 1)
	assert.Contains(t, res.Stats.Errors[0], "Family @F2@")
	assert.Contains(t, res.Stats.Errors[0], "@I99@")
	assert.Equal(t, 3, src.FamiliesCount)
	assert.Contains(t, string(src.Metadata), "TestBuilder")
	assert.Contains(t, string(src.Metadata), "5.5.1")

	t.Run("record without name", func(t *testing.T) {
		p := byXref(t, gdb, src.ID, "@I7@")
		assert.Empty(t, p.GivenNames)
		assert.Empty(t, p.Surname)
		assert.Equal(t, "Unknown", p.FullName())
		assert.Equal(t, "U", p.Gender)
	})

	t.Run("living status", func(t *testing.T) {
		assert.True(t, byXref(t, gdb, src.ID, "@I6@").IsLiving)
		assert.False(t, byXref(t, gdb, src.ID, "@I4@").IsLiving)
		assert.False(t, byXref(t, gdb, src.ID, "@I5@").IsLiving)
	})

	t.Run("names and occupation", func(t *testing.T) {
		p := byXref(t, gdb, src.ID, "@I3@")
		assert.Equal(t, "Harry", p.Nickname)
		assert.Equal(t, "Shipwright", p.Occupation)
		assert.Equal(t, "Harry (Henry Hale)", p.DisplayName())
		assert.Equal(t, "1850-1921", p.LifeSpan())
	})

	t.Run("adopted child", func(t *testing.T) {
		henry := byXref(t, gdb, src.ID, "@I3@")
		child := byXref(t, gdb, src.ID, "@I7@")
		var rel schema.Relationship
		err := gdb.Where("person1_id = ? AND person2_id = ?", henry.ID, child.ID).
			Take(&rel).Error
		require.NoError(t, err)
		assert.Equal(t, schema.SubtypeAdoptive, rel.Subtype)
	})

	t.Run("places and marriage", func(t *testing.T) {
		var places []schema.Place
		require.NoError(t, gdb.Where("source_id = ?", src.ID).Find(&places).Error)
		require.Len(t, places, 1)
		assert.Equal(t, "Dover", places[0].Locality)
		assert.Equal(t, "England", places[0].Country)

		george := byXref(t, gdb, src.ID, "@I1@")
		martha := byXref(t, gdb, src.ID, "@I2@")
		require.NotNil(t, george.BirthPlaceID)
		assert.Equal(t, places[0].ID, *george.BirthPlaceID)

		var marr []schema.Event
		err := gdb.Where("event_type = ?", "marriage").Find(&marr).Error
		require.NoError(t, err)
		require.Len(t, marr, 1)
		assert.Equal(t, george.ID, marr[0].PersonID)
		require.NotNil(t, marr[0].OtherPersonID)
		assert.Equal(t, martha.ID, *marr[0].OtherPersonID)

		var rel schema.Relationship
		err = gdb.Where("person1_id = ? AND relationship_type = ?",
			george.ID, schema.RelSpouse).Take(&rel).Error
		require.NoError(t, err)
		assert.Equal(t, "1848", rel.MarriageDateText)
		assert.Equal(t, "Dover, Kent, England", rel.MarriagePlace)
		assert.True(t, rel.IsCurrent)
		assert.Equal(t, schema.ConfidenceHigh, rel.Confidence)
	})

	t.Run("traversal over imported data", func(t *testing.T) {
		eng := graph.New(cfg, iostore.New(gdb))
		thomas := byXref(t, gdb, src.ID, "@I6@")
		lin, err := eng.Ancestors(ctx, thomas.ID, 3)
		require.NoError(t, err)

		gens := make(map[string]int)
		for _, v := range lin.Persons {
			gens[v.Person.GedcomID] = v.Generation
		}
		assert.Equal(t, map[string]int{
			"@I5@": 1, "@I3@": 2, "@I4@": 2, "@I1@": 3, "@I2@": 3,
		}, gens)
	})
}

func TestImportDuplicate(t *testing.T) {
	ctx := context.Background()
	op, cfg := iotesting.OpenSQLite(t)
	imp := New(cfg, op)
	data := iotesting.ReadTestdata(t, "simple.ged")

	first, err := imp.Import(ctx, data, "simple.ged", "")
	require.NoError(t, err)

	_, err = imp.Import(ctx, data, "copy.ged", "")
	require.Error(t, err)
	id, ok := family.IsDuplicate(err)
	assert.True(t, ok)
	assert.Equal(t, first.Source.ID, id)

	store := iostore.New(op.DB())
	srcs, err := store.Sources(ctx)
	require.NoError(t, err)
	require.Len(t, srcs, 1)
	assert.Equal(t, 3, srcs[0].PersonsCount)
}

func TestImportConcurrentDuplicate(t *testing.T) {
	ctx := context.Background()
	op, cfg := iotesting.OpenSQLite(t)
	imp := New(cfg, op)
	data := iotesting.ReadTestdata(t, "hale.ged")

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = imp.Import(ctx, data, "hale.ged", "")
		}()
	}
	wg.Wait()

	var dups int
	for _, err := range errs {
		if _, ok := family.IsDuplicate(err); ok {
			dups++
			continue
		}
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, dups)

	srcs, err := iostore.New(op.DB()).Sources(ctx)
	require.NoError(t, err)
	assert.Len(t, srcs, 1)
}

func TestImportEmpty(t *testing.T) {
	ctx := context.Background()
	op, cfg := iotesting.OpenSQLite(t)
	imp := New(cfg, op)

	_, err := imp.Import(ctx, []byte{}, "empty.ged", "")
	require.Error(t, err)
	assert.True(t, family.IsInvalidParameter(err))

	srcs, err := iostore.New(op.DB()).Sources(ctx)
	require.NoError(t, err)
	assert.Empty(t, srcs)
}

func TestImportMalformed(t *testing.T) {
	ctx := context.Background()
	op, cfg := iotesting.OpenSQLite(t)
	imp := New(cfg, op)
	store := iostore.New(op.DB())
	data := iotesting.ReadTestdata(t, "malformed.ged")

	_, err := imp.Import(ctx, data, "malformed.ged", "")
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.ImportMalformedFileError, gnErr.Code)

	srcs, err := store.Sources(ctx)
	require.NoError(t, err)
	require.Len(t, srcs, 1)
	assert.Equal(t, schema.StatusError, srcs[0].Status)
	assert.NotEmpty(t, srcs[0].ErrorMessage)
	assert.Zero(t, srcs[0].PersonsCount)

	// a failed source does not block a retry of the same bytes
	_, err = imp.Import(ctx, data, "malformed.ged", "")
	require.Error(t, err)
	_, dup := family.IsDuplicate(err)
	assert.False(t, dup)

	srcs, err = store.Sources(ctx)
	require.NoError(t, err)
	assert.Len(t, srcs, 1)
}

func TestImportCancelled(t *testing.T) {
	op, cfg := iotesting.OpenSQLite(t)
	imp := New(cfg, op)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := imp.Import(ctx, iotesting.ReadTestdata(t, "simple.ged"), "simple.ged", "")
	require.Error(t, err)
}

func TestValidateUpload(t *testing.T) {
	const limit = 1000
	tests := []struct {
		msg      string
		filename string
		size     int64
		code     gn.ErrorCode
	}{
		{"ged", "tree.ged", 10, errcode.UnknownError},
		{"gedcom upper", "TREE.GEDCOM", 10, errcode.UnknownError},
		{"limit", "tree.ged", limit, errcode.UnknownError},
		{"extension", "tree.txt", 10, errcode.InvalidParameterError},
		{"no extension", "tree", 10, errcode.InvalidParameterError},
		{"empty", "tree.ged", 0, errcode.InvalidParameterError},
		{"too large", "tree.ged", limit + 1, errcode.ImportFileTooLargeError},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			err := ValidateUpload(tt.filename, tt.size, limit)
			if tt.code == errcode.UnknownError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.code, family.Code(err))
		})
	}
}

func TestFileHash(t *testing.T) {
	a := fileHash([]byte("0 HEAD"))
	assert.Len(t, a, 64)
	assert.Equal(t, a, fileHash([]byte("0 HEAD")))
	assert.NotEqual(t, a, fileHash([]byte("0 HEAD ")))
}
