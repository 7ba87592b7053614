// Package store persists profile aggregates as kind-tagged rows with a JSON
// payload. The service layer owns conversion between aggregates and rows;
// stores only move rows and enforce the optimistic-concurrency check.
package store

import (
	"context"
	"time"
)

// Kind discriminates the profile variant stored in a row.
type Kind string

const (
	KindAgency  Kind = "agency"
	KindMaid    Kind = "maid"
	KindSponsor Kind = "sponsor"
)

// Row is the persisted envelope of one profile aggregate. Payload is the
// JSON-encoded variant record; the remaining columns exist for indexing and
// the updated-at compare-and-swap.
type Row struct {
	ID        string
	UserID    string
	Kind      Kind
	Status    string
	Payload   []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is the persistence boundary for profile rows.
//
// Update takes the UpdatedAt the caller loaded and must fail with
// sentinel.ErrConflict when the stored row has moved on; two concurrent
// load-mutate-save cycles on the same ID would otherwise silently overwrite
// each other.
type Store interface {
	Create(ctx context.Context, row Row) error
	Get(ctx context.Context, id string) (Row, error)
	Update(ctx context.Context, row Row, expectedUpdatedAt time.Time) error
	ListByUser(ctx context.Context, userID string) ([]Row, error)
}
