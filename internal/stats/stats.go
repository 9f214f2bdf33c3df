// Package stats tracks per-lane collected/emitted counts, exported
// through Prometheus counters rather than expvar since this module has
// no expvar-based HTTP surface of its own.
package stats

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// LaneStats holds the running collected/emitted counts for one lane;
// the Registry's Prometheus counter vectors mirror them.
type LaneStats struct {
	Name      string
	Collected int64
	Emitted   int64
}

// Registry owns one counter vector pair (collected, emitted) labeled by
// lane name, and the map Snapshot copies (TopologyHandle.Stats is a
// *Registry).
type Registry struct {
	namespace string

	mu     sync.Mutex
	counts map[string]*LaneStats

	collected *prometheus.CounterVec
	emitted   *prometheus.CounterVec
}

// NewRegistry builds a Registry whose Prometheus metrics are namespaced
// by ns (typically Config.StatsNamespace).
func NewRegistry(ns string) *Registry {
	r := &Registry{
		namespace: ns,
		counts:    make(map[string]*LaneStats),
		collected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "lane_collected_total",
			Help:      "Events collected by a lane's sink.",
		}, []string{"lane"}),
		emitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "lane_emitted_total",
			Help:      "Events emitted downstream by a lane's sink.",
		}, []string{"lane"}),
	}
	return r
}

// Collectors returns the Prometheus collectors a caller should register
// with their own prometheus.Registerer (or the default one).
func (r *Registry) Collectors() []prometheus.Collector {
	return []prometheus.Collector{r.collected, r.emitted}
}

// CountCollected records one collected event on lane.
func (r *Registry) CountCollected(lane string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entryLocked(lane).Collected++
	r.collected.WithLabelValues(lane).Inc()
}

// CountEmitted records one emitted event on lane.
func (r *Registry) CountEmitted(lane string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entryLocked(lane).Emitted++
	r.emitted.WithLabelValues(lane).Inc()
}

func (r *Registry) entryLocked(lane string) *LaneStats {
	e, ok := r.counts[lane]
	if !ok {
		e = &LaneStats{Name: lane}
		r.counts[lane] = e
	}
	return e
}

// Snapshot returns a copy of every lane's current counts, keyed by lane
// name.
func (r *Registry) Snapshot() map[string]LaneStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]LaneStats, len(r.counts))
	for name, e := range r.counts {
		out[name] = *e
	}
	return out
}
