// Package iooptimize implements db.Optimizer, the maintenance pass run
// after imports and deletions.
package iooptimize

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gedgraph/pkg/db"
	"github.com/gnames/gnfmt"
)

// StaleAfter is how long an import may stay pending or processing
// before Optimize declares it interrupted.
const StaleAfter = time.Hour

type optimizer struct {
	operator db.Operator
	now      func() time.Time
}

// NewOptimizer creates a new Optimizer.
func NewOptimizer(op db.Operator) db.Optimizer {
	return &optimizer{operator: op, now: time.Now}
}

// Optimize runs three steps:
//  1. Move stale pending or processing sources to error status
//  2. Remove places nothing refers to
//  3. Refresh planner statistics (VACUUM and ANALYZE)
func (o *optimizer) Optimize(ctx context.Context) (*db.OptimizeReport, error) {
	gdb := o.operator.DB()
	if gdb == nil {
		return nil, NotConnectedError()
	}
	gdb = gdb.WithContext(ctx)
	start := time.Now()
	var res db.OptimizeReport
	var err error

	slog.Info("Step 1/3: Failing interrupted imports")
	if res.StaleSources, err = failStaleImports(gdb, o.now().Add(-StaleAfter)); err != nil {
		return nil, err
	}

	slog.Info("Step 2/3: Removing orphan places")
	if res.OrphanPlaces, err = removeOrphanPlaces(gdb); err != nil {
		return nil, err
	}

	slog.Info("Step 3/3: Updating statistics")
	if err = vacuumAnalyze(ctx, o.operator); err != nil {
		return nil, err
	}

	slog.Info("Optimization complete",
		"stale_sources", res.StaleSources,
		"orphan_places", res.OrphanPlaces,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return &res, nil
}
