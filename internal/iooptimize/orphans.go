package iooptimize

import (
	"log/slog"
	"time"

	"github.com/gnames/gedgraph/pkg/schema"
	"gorm.io/gorm"
)

// interruptedMsg is the error message of a source whose import never
// finished.
const interruptedMsg = "import was interrupted"

// failStaleImports moves sources that started before cutoff and never
// finished to error status, so the same file can be imported again.
func failStaleImports(gdb *gorm.DB, cutoff time.Time) (int64, error) {
	var srcs []schema.Source
	err := gdb.
		Where("status IN ?", []string{
			string(schema.StatusPending), string(schema.StatusProcessing),
		}).
		Find(&srcs).Error
	if err != nil {
		return 0, StepError("stale imports", err)
	}

	// imported_at is compared in Go, sqlite keeps times as text.
	var ids []string
	for _, v := range srcs {
		if v.ImportedAt.Before(cutoff) {
			ids = append(ids, v.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	q := gdb.Model(&schema.Source{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"status":        schema.StatusError,
			"error_message": interruptedMsg,
		})
	if q.Error != nil {
		return 0, StepError("stale imports", q.Error)
	}
	slog.Info("Failed interrupted imports", "count", q.RowsAffected)
	return q.RowsAffected, nil
}

// removeOrphanPlaces deletes places that no event, person or
// relationship points to. They appear when a record is rolled back
// after its places were stored.
func removeOrphanPlaces(gdb *gorm.DB) (int64, error) {
	query := `
DELETE FROM places
WHERE NOT EXISTS (
	SELECT 1 FROM events e WHERE e.place_id = places.id
)
AND NOT EXISTS (
	SELECT 1 FROM persons p
	WHERE p.birth_place_id = places.id OR p.death_place_id = places.id
)
AND NOT EXISTS (
	SELECT 1 FROM relationships r WHERE r.marriage_place_id = places.id
)`

	q := gdb.Exec(query)
	if q.Error != nil {
		return 0, StepError("orphan places", q.Error)
	}
	slog.Info("Removed orphan places", "count", q.RowsAffected)
	return q.RowsAffected, nil
}
