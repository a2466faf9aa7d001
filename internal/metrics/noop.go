package metrics

import "time"

// NoopRecorder discards all metric events.
type NoopRecorder struct{}

// NewNoop returns a Recorder that does nothing.
func NewNoop() *NoopRecorder {
	return &NoopRecorder{}
}

// IncEntityCreated does nothing.
func (NoopRecorder) IncEntityCreated(kind string) {}

// IncEntityUpdated does nothing.
func (NoopRecorder) IncEntityUpdated(kind string) {}

// IncEntityDeleted does nothing.
func (NoopRecorder) IncEntityDeleted(kind string) {}

// IncCascadeDelete does nothing.
func (NoopRecorder) IncCascadeDelete() {}

// IncCascadePartial does nothing.
func (NoopRecorder) IncCascadePartial() {}

// IncSeedRun does nothing.
func (NoopRecorder) IncSeedRun(status string) {}

// ObserveSeedDuration does nothing.
func (NoopRecorder) ObserveSeedDuration(duration time.Duration) {}
