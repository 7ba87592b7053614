// Package service orchestrates profile use cases: load persisted state,
// reconstruct the aggregate, invoke one mutation, persist, then publish the
// drained domain events. Aggregates never touch I/O; everything external
// happens here.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"worklink/internal/profile/cache"
	"worklink/internal/profile/metrics"
	"worklink/internal/profile/models"
	"worklink/internal/profile/store"
	"worklink/pkg/domain"
	dErrors "worklink/pkg/domain-errors"
	"worklink/pkg/platform/sentinel"
)

// EventPublisher receives the events drained after each successful save.
type EventPublisher interface {
	Emit(ctx context.Context, event models.Event) error
}

// Cache is the optional read cache. All methods must be safe to skip: a
// cache error never fails a use case.
type Cache interface {
	Get(ctx context.Context, id string) (store.Row, error)
	Set(ctx context.Context, row store.Row) error
	Invalidate(ctx context.Context, id string) error
}

// Service coordinates profile aggregates with their store, cache and event
// sink.
type Service struct {
	store     store.Store
	tx        Tx
	cache     Cache
	publisher EventPublisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	now       func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithEventPublisher(publisher EventPublisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithClock overrides the service clock. Test hook.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New constructs a Service over the given store.
func New(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:  st,
		tx:     newShardedTx(),
		logger: slog.Default(),
		tracer: otel.Tracer("worklink/profile"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProfileSummary is the envelope-level view used by listing endpoints.
type ProfileSummary struct {
	ID        string     `json:"id"`
	Kind      store.Kind `json:"kind"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ListByUser returns envelope summaries of every profile owned by userID.
func (s *Service) ListByUser(ctx context.Context, userID domain.UserID) ([]ProfileSummary, error) {
	ctx, span := s.tracer.Start(ctx, "profile.ListByUser")
	defer span.End()

	rows, err := s.store.ListByUser(ctx, userID.String())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list profiles")
	}
	out := make([]ProfileSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, ProfileSummary{
			ID:        row.ID,
			Kind:      row.Kind,
			Status:    row.Status,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return out, nil
}

// loadRow reads a profile row, consulting the cache first when configured.
// Mutating paths bypass this and read the store of record directly.
func (s *Service) loadRow(ctx context.Context, id domain.ProfileID, kind store.Kind) (store.Row, error) {
	if s.cache != nil {
		if row, err := s.cache.Get(ctx, id.String()); err == nil {
			if row.Kind != kind {
				return store.Row{}, profileNotFound(kind)
			}
			return row, nil
		} else if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("profile cache read failed", "profile_id", id.String(), "error", err)
		}
	}

	row, err := s.storeRow(ctx, id, kind)
	if err != nil {
		return store.Row{}, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, row); err != nil {
			s.logger.Warn("profile cache write failed", "profile_id", id.String(), "error", err)
		}
	}
	return row, nil
}

// storeRow reads a row from the store of record and checks its kind.
func (s *Service) storeRow(ctx context.Context, id domain.ProfileID, kind store.Kind) (store.Row, error) {
	row, err := s.store.Get(ctx, id.String())
	if errors.Is(err, sentinel.ErrNotFound) {
		return store.Row{}, profileNotFound(kind)
	}
	if err != nil {
		return store.Row{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profile")
	}
	if row.Kind != kind {
		return store.Row{}, profileNotFound(kind)
	}
	return row, nil
}

// createRow persists a brand-new aggregate row and publishes its events.
func (s *Service) createRow(ctx context.Context, row store.Row, events []models.Event) error {
	if err := s.store.Create(ctx, row); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.New(dErrors.CodeConflict, "profile already exists")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create profile")
	}
	s.publish(ctx, events)
	if s.metrics != nil {
		s.metrics.ProfilesCreated.WithLabelValues(string(row.Kind)).Inc()
	}
	return nil
}

// saveRow persists a mutated aggregate row with the compare-and-swap
// loaded-at timestamp, invalidates the cache and publishes events.
func (s *Service) saveRow(ctx context.Context, row store.Row, expectedUpdatedAt time.Time, events []models.Event) error {
	if err := s.store.Update(ctx, row, expectedUpdatedAt); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrConflict):
			if s.metrics != nil {
				s.metrics.SaveConflicts.Inc()
			}
			return dErrors.New(dErrors.CodeConflict, "profile was modified concurrently, reload and retry")
		case errors.Is(err, sentinel.ErrNotFound):
			return dErrors.New(dErrors.CodeNotFound, "profile not found")
		default:
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save profile")
		}
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, row.ID); err != nil {
			s.logger.Warn("profile cache invalidation failed", "profile_id", row.ID, "error", err)
		}
	}
	s.publish(ctx, events)
	return nil
}

// publish emits drained events one by one. A failing sink is logged, not
// propagated: the state change is already durable and the drain contract
// puts redelivery outside the aggregate's guarantees.
func (s *Service) publish(ctx context.Context, events []models.Event) {
	if s.publisher == nil {
		return
	}
	for _, event := range events {
		if err := s.publisher.Emit(ctx, event); err != nil {
			s.logger.Error("domain event publish failed",
				"event_type", string(event.Type),
				"aggregate_id", event.AggregateID.String(),
				"error", err)
		}
	}
}

func (s *Service) observeMutate(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveMutate(start)
	}
}

func (s *Service) observeGet(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveGet(start)
	}
}

func profileNotFound(kind store.Kind) error {
	return dErrors.Newf(dErrors.CodeNotFound, "%s profile not found", kind)
}

func marshalPayload(v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode profile")
	}
	return payload, nil
}
