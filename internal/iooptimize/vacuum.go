package iooptimize

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gedgraph/pkg/db"
)

// vacuumAnalyze reclaims space and updates the statistics used by the
// query planner. VACUUM cannot run inside a transaction block.
func vacuumAnalyze(ctx context.Context, op db.Operator) error {
	stmts := []string{"VACUUM ANALYZE"}
	if op.Driver() == db.DriverSQLite {
		stmts = []string{"VACUUM", "ANALYZE"}
	}

	start := time.Now()
	gdb := op.DB().WithContext(ctx)
	for _, v := range stmts {
		if err := gdb.Exec(v).Error; err != nil {
			return StepError(v, err)
		}
	}

	slog.Info("VACUUM ANALYZE completed", "duration", time.Since(start).String())
	return nil
}
