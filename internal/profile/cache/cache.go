// Package cache provides a Redis read cache for profile rows. Reads go
// through the cache when configured; every successful write invalidates the
// cached entry, so a miss is always answered from the store of record.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"worklink/internal/profile/store"
)

// DefaultTTL bounds staleness for rows evicted by neither write path.
const DefaultTTL = 10 * time.Minute

// ErrMiss reports that the key was absent; callers fall through to the
// store.
var ErrMiss = errors.New("cache miss")

// ProfileCache caches serialized profile rows keyed by profile ID.
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ProfileCache{client: client, ttl: ttl}
}

func key(id string) string { return "profile:" + id }

// Get returns the cached row or ErrMiss.
func (c *ProfileCache) Get(ctx context.Context, id string) (store.Row, error) {
	raw, err := c.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return store.Row{}, ErrMiss
	}
	if err != nil {
		return store.Row{}, fmt.Errorf("cache get: %w", err)
	}
	var row cachedRow
	if err := json.Unmarshal(raw, &row); err != nil {
		// Corrupt entries behave like misses; the next Set overwrites them.
		return store.Row{}, ErrMiss
	}
	return row.toRow(), nil
}

// Set stores the row with the configured TTL.
func (c *ProfileCache) Set(ctx context.Context, row store.Row) error {
	raw, err := json.Marshal(fromRow(row))
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, key(row.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached entry. Called after every successful save.
func (c *ProfileCache) Invalidate(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

// cachedRow is the wire shape inside Redis; kept separate from store.Row so
// store refactors do not silently change cached bytes.
type cachedRow struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Kind      string          `json:"kind"`
	Status    string          `json:"status"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func fromRow(row store.Row) cachedRow {
	return cachedRow{
		ID:        row.ID,
		UserID:    row.UserID,
		Kind:      string(row.Kind),
		Status:    row.Status,
		Payload:   row.Payload,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func (r cachedRow) toRow() store.Row {
	return store.Row{
		ID:        r.ID,
		UserID:    r.UserID,
		Kind:      store.Kind(r.Kind),
		Status:    r.Status,
		Payload:   r.Payload,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
