package events

import (
	"context"
	"sync"

	"worklink/internal/profile/models"
	"worklink/pkg/domain"
)

// MemoryStore is an append-only in-memory event log. Used by tests and as
// the sink when Kafka is not configured.
type MemoryStore struct {
	mu     sync.RWMutex
	events []models.Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, event models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByAggregate returns events for one profile in append order.
func (s *MemoryStore) ListByAggregate(_ context.Context, aggregateID domain.ProfileID) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Event
	for _, event := range s.events {
		if event.AggregateID == aggregateID {
			out = append(out, event)
		}
	}
	return out, nil
}

// All returns every stored event in append order.
func (s *MemoryStore) All() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Event(nil), s.events...)
}
