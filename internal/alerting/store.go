package alerting

import (
	"context"
	"sync"
	"time"

	"FlowScope/internal/model"
)

// Store keeps a bounded alert history, newest first.
type Store interface {
	// Add appends one alert, evicting the oldest when at capacity.
	Add(ctx context.Context, alert model.Alert) error

	// Recent returns up to limit alerts, newest first. A non-positive
	// limit returns everything held.
	Recent(ctx context.Context, limit int) ([]model.Alert, error)

	// Summary aggregates the full held history.
	Summary(ctx context.Context) (model.AlertSummary, error)

	// Close releases any resources held by the store.
	Close() error
}

// MemoryStore is the default in-process Store, a mutex-protected ring.
type MemoryStore struct {
	mu       sync.RWMutex
	alerts   []model.Alert
	capacity int
}

// NewMemoryStore creates a memory store holding at most capacity alerts.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = 1000
	}
	return &MemoryStore{capacity: capacity}
}

func (s *MemoryStore) Add(ctx context.Context, alert model.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append([]model.Alert{alert}, s.alerts...)
	if len(s.alerts) > s.capacity {
		s.alerts = s.alerts[:s.capacity]
	}
	return nil
}

func (s *MemoryStore) Recent(ctx context.Context, limit int) ([]model.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.alerts)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]model.Alert, n)
	copy(out, s.alerts[:n])
	return out, nil
}

func (s *MemoryStore) Summary(ctx context.Context) (model.AlertSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Summarize(s.alerts, time.Now()), nil
}

func (s *MemoryStore) Close() error {
	return nil
}
