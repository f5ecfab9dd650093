package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter keeps per-key windows in process memory.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	now     func() time.Time
}

func NewMemoryLimiter(limit int, period time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

// WithClock replaces the time source, used by tests.
func (m *MemoryLimiter) WithClock(now func() time.Time) *MemoryLimiter {
	m.now = now
	return m
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(m.period)}
		m.windows[key] = w
	}
	w.count++

	return Decision{
		Allowed:   w.count <= m.limit,
		Limit:     m.limit,
		Remaining: remaining(m.limit, w.count),
		ResetAt:   w.resetAt,
	}, nil
}

func (m *MemoryLimiter) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.windows, key)
	m.mu.Unlock()
	return nil
}

// ResetAll drops every counter.
func (m *MemoryLimiter) ResetAll() {
	m.mu.Lock()
	m.windows = make(map[string]*window)
	m.mu.Unlock()
}

// Sweep removes expired windows and returns how many were dropped.
func (m *MemoryLimiter) Sweep() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, w := range m.windows {
		if !now.Before(w.resetAt) {
			delete(m.windows, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked keys.
func (m *MemoryLimiter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}
