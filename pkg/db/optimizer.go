package db

import "context"

// Optimizer performs database maintenance after imports and deletions.
type Optimizer interface {
	// Optimize fails interrupted imports, removes unreferenced places
	// and refreshes planner statistics.
	Optimize(ctx context.Context) (*OptimizeReport, error)
}

// OptimizeReport counts rows changed by Optimize.
type OptimizeReport struct {
	// StaleSources is the number of pending or processing sources moved
	// to error status.
	StaleSources int64 `json:"stale_sources"`

	// OrphanPlaces is the number of deleted places no person, event or
	// relationship refers to.
	OrphanPlaces int64 `json:"orphan_places"`
}
