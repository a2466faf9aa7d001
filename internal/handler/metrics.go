package handler

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/placekeeper/placekeeper/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeLabeledCounters(w, "placekeeper_entities_created_total", "kind", snap.EntitiesCreated)
	writeLabeledCounters(w, "placekeeper_entities_updated_total", "kind", snap.EntitiesUpdated)
	writeLabeledCounters(w, "placekeeper_entities_deleted_total", "kind", snap.EntitiesDeleted)

	writeMetric(w, "placekeeper_cascade_deletes_total %d\n", snap.CascadeDeletes)
	writeMetric(w, "placekeeper_cascade_partials_total %d\n", snap.CascadePartials)

	writeLabeledCounters(w, "placekeeper_seed_runs_total", "status", snap.SeedRuns)
	writeMetric(w, "placekeeper_seed_duration_seconds_count %d\n", snap.SeedDurationCount)
	writeMetric(w, "placekeeper_seed_duration_seconds_sum %.6f\n", float64(snap.SeedDurationTotalNs)/1e9)
}

func writeLabeledCounters(w http.ResponseWriter, name, label string, counters map[string]uint64) {
	values := make([]string, 0, len(counters))
	for value := range counters {
		values = append(values, value)
	}
	sort.Strings(values)

	for _, value := range values {
		writeMetric(w, "%s{%s=\"%s\"} %d\n", name, label, value, counters[value])
	}
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
