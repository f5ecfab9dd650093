package upstream

import (
	"sync/atomic"
	"time"
)

// Metrics tracks AI service call counters for one client
type Metrics struct {
	calls   atomic.Int64
	errors  atomic.Int64
	latency atomic.Int64 // total latency in nanoseconds
}

// MetricsSnapshot is a point-in-time copy of Metrics
type MetricsSnapshot struct {
	Calls        int64   `json:"calls"`
	Errors       int64   `json:"errors"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}

func (m *Metrics) record(duration time.Duration, err error) {
	m.calls.Add(1)
	m.latency.Add(duration.Nanoseconds())
	if err != nil {
		m.errors.Add(1)
	}
}

// Snapshot returns the current counters
func (m *Metrics) Snapshot() MetricsSnapshot {
	calls := m.calls.Load()
	s := MetricsSnapshot{
		Calls:  calls,
		Errors: m.errors.Load(),
	}
	if calls > 0 {
		s.AvgLatencyMs = float64(m.latency.Load()) / float64(calls) / 1e6
	}
	return s
}

// Reset zeroes all counters (useful for testing)
func (m *Metrics) Reset() {
	m.calls.Store(0)
	m.errors.Store(0)
	m.latency.Store(0)
}
