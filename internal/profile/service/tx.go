package service

import (
	"context"
	"sync"
	"time"

	dErrors "worklink/pkg/domain-errors"
)

// Tx serializes load-mutate-save cycles for the same profile within this
// process. The store's updated-at compare-and-swap covers cross-process
// racing; this boundary just keeps in-process callers from burning retries
// against each other.
type Tx interface {
	RunInTx(ctx context.Context, profileID string, fn func(ctx context.Context) error) error
}

// Sharding keeps unrelated profiles from contending on one lock.
const numTxShards = 64

// defaultTxTimeout bounds a single load-mutate-save cycle.
const defaultTxTimeout = 5 * time.Second

type shardedTx struct {
	shards  [numTxShards]sync.Mutex
	timeout time.Duration
}

func newShardedTx() *shardedTx {
	return &shardedTx{timeout: defaultTxTimeout}
}

func (t *shardedTx) RunInTx(ctx context.Context, profileID string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	shard := hashFNV(profileID) % numTxShards
	t.shards[shard].Lock()
	defer t.shards[shard].Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	return fn(ctx)
}

// hashFNV is FNV-1a; good distribution for short ID strings.
func hashFNV(s string) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}
