package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hedamo/hedamo-backend/internal/product_analysis/domain"
)

// DefaultMemoryCapacity bounds the in-process history
const DefaultMemoryCapacity = 500

// MemoryStore is the history store used when no database is configured.
// It keeps at most capacity records and drops the oldest first.
type MemoryStore struct {
	mu       sync.RWMutex
	records  []domain.ReportRecord // oldest first
	capacity int
}

func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryStore{capacity: capacity}
}

func (m *MemoryStore) Save(_ context.Context, rec *domain.ReportRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.AnalyzedAt.IsZero() {
		rec.AnalyzedAt = time.Now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, *rec)
	if over := len(m.records) - m.capacity; over > 0 {
		m.records = append([]domain.ReportRecord(nil), m.records[over:]...)
	}
	return nil
}

func (m *MemoryStore) List(_ context.Context, limit int) ([]domain.ReportRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.records)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]domain.ReportRecord, 0, n)
	for i := len(m.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

func (m *MemoryStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.records[:0]
	var removed int64
	for _, rec := range m.records {
		if rec.AnalyzedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	m.records = kept
	return removed, nil
}
