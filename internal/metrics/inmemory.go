package metrics

import (
	"sync"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	EntitiesCreated     map[string]uint64
	EntitiesUpdated     map[string]uint64
	EntitiesDeleted     map[string]uint64
	CascadeDeletes      uint64
	CascadePartials     uint64
	SeedRuns            map[string]uint64
	SeedDurationCount   uint64
	SeedDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	mu                  sync.Mutex
	entitiesCreated     map[string]uint64
	entitiesUpdated     map[string]uint64
	entitiesDeleted     map[string]uint64
	cascadeDeletes      uint64
	cascadePartials     uint64
	seedRuns            map[string]uint64
	seedDurationCount   uint64
	seedDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		entitiesCreated: make(map[string]uint64),
		entitiesUpdated: make(map[string]uint64),
		entitiesDeleted: make(map[string]uint64),
		seedRuns:        make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		EntitiesCreated:     copyCounters(m.entitiesCreated),
		EntitiesUpdated:     copyCounters(m.entitiesUpdated),
		EntitiesDeleted:     copyCounters(m.entitiesDeleted),
		CascadeDeletes:      m.cascadeDeletes,
		CascadePartials:     m.cascadePartials,
		SeedRuns:            copyCounters(m.seedRuns),
		SeedDurationCount:   m.seedDurationCount,
		SeedDurationTotalNs: m.seedDurationTotalNs,
	}
}

// IncEntityCreated increments the created counter for an entity kind.
func (m *InMemoryRecorder) IncEntityCreated(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entitiesCreated[kind]++
}

// IncEntityUpdated increments the updated counter for an entity kind.
func (m *InMemoryRecorder) IncEntityUpdated(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entitiesUpdated[kind]++
}

// IncEntityDeleted increments the deleted counter for an entity kind.
func (m *InMemoryRecorder) IncEntityDeleted(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entitiesDeleted[kind]++
}

// IncCascadeDelete increments the cascade delete counter.
func (m *InMemoryRecorder) IncCascadeDelete() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cascadeDeletes++
}

// IncCascadePartial increments the partial cascade counter.
func (m *InMemoryRecorder) IncCascadePartial() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cascadePartials++
}

// IncSeedRun increments the seed run counter for a status.
func (m *InMemoryRecorder) IncSeedRun(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seedRuns[status]++
}

// ObserveSeedDuration records seed run duration.
func (m *InMemoryRecorder) ObserveSeedDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seedDurationCount++
	m.seedDurationTotalNs += duration.Nanoseconds()
}

func copyCounters(src map[string]uint64) map[string]uint64 {
	dst := make(map[string]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
