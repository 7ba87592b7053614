package store

import (
	"context"
	"sync"
	"time"

	"worklink/pkg/platform/sentinel"
)

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]Row
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string]Row)}
}

func (s *MemoryStore) Create(_ context.Context, row Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rows[row.ID]; exists {
		return sentinel.ErrConflict
	}
	s.rows[row.ID] = copyRow(row)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.rows[id]
	if !ok {
		return Row{}, sentinel.ErrNotFound
	}
	return copyRow(row), nil
}

func (s *MemoryStore) Update(_ context.Context, row Row, expectedUpdatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.rows[row.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if !current.UpdatedAt.Equal(expectedUpdatedAt) {
		return sentinel.ErrConflict
	}
	s.rows[row.ID] = copyRow(row)
	return nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID string) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Row
	for _, row := range s.rows {
		if row.UserID == userID {
			out = append(out, copyRow(row))
		}
	}
	return out, nil
}

// copyRow prevents callers from mutating stored payload bytes.
func copyRow(row Row) Row {
	row.Payload = append([]byte(nil), row.Payload...)
	return row
}
