// Package events moves profile domain events from the service layer to
// external sinks. The aggregates buffer events; the service drains them
// after each successful save and hands them to a Publisher here. Delivery
// is at-least-once at best: a crash between save and publish loses the
// batch, which is an accepted property of the drain contract.
package events

import (
	"context"
	"log/slog"
	"sync"

	"worklink/internal/profile/models"
)

// Sink receives published events. Implementations: in-memory log (tests,
// local development), Kafka producer (production).
type Sink interface {
	Append(ctx context.Context, event models.Event) error
}

// Publisher fans events into a Sink, synchronously by default or through a
// buffered channel when WithAsyncBuffer is set. Close drains any queued
// events before returning.
type Publisher struct {
	sink   Sink
	logger *slog.Logger

	inbox  chan models.Event
	done   chan struct{}
	closed sync.Once
}

type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to asynchronous mode with the given
// channel capacity. Emit blocks only when the buffer is full.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.inbox = make(chan models.Event, size)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(sink Sink, opts ...Option) *Publisher {
	p := &Publisher{sink: sink, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		p.done = make(chan struct{})
		go p.drainLoop()
	}
	return p
}

// Emit publishes one event. In async mode failures surface in the drain
// goroutine's log rather than here.
func (p *Publisher) Emit(ctx context.Context, event models.Event) error {
	if p.inbox == nil {
		return p.sink.Append(ctx, event)
	}
	select {
	case p.inbox <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Publisher) drainLoop() {
	defer close(p.done)
	for event := range p.inbox {
		if err := p.sink.Append(context.Background(), event); err != nil {
			p.logger.Error("event publish failed",
				"event_type", string(event.Type),
				"aggregate_id", event.AggregateID.String(),
				"error", err)
		}
	}
}

// Close stops accepting events and waits for the buffer to drain. Safe to
// call more than once.
func (p *Publisher) Close() {
	p.closed.Do(func() {
		if p.inbox != nil {
			close(p.inbox)
			<-p.done
		}
	})
}
