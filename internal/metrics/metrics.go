// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Entity management metrics
	IncEntityCreated(kind string)
	IncEntityUpdated(kind string)
	IncEntityDeleted(kind string)

	// Cascade delete metrics
	IncCascadeDelete()
	IncCascadePartial()

	// Seeding metrics
	IncSeedRun(status string) // status: "inserted", "skipped", "failed"
	ObserveSeedDuration(duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
