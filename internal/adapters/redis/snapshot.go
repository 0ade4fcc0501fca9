package redisad

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"yisu_hotel/internal/adapters/observability"
	"yisu_hotel/internal/domain"
)

const snapshotKey = "yisu:snapshot"

// SnapshotStore keeps the whole dataset under a single key. Saves replace
// the value wholesale; there is no per-record structure in Redis.
type SnapshotStore struct{ c *redis.Client }

func NewSnapshotStore(addr, pass string, db int) *SnapshotStore {
	return &SnapshotStore{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (r *SnapshotStore) Load(ctx context.Context) (domain.Snapshot, error) {
	b, err := r.c.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		observability.ObserveSnapshot("redis", "miss")
		return domain.Snapshot{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Snapshot{}, err
	}
	var s domain.Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return domain.Snapshot{}, err
	}
	observability.ObserveSnapshot("redis", "load")
	return s, nil
}

func (r *SnapshotStore) Save(ctx context.Context, s domain.Snapshot) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	observability.ObserveSnapshot("redis", "save")
	return r.c.Set(ctx, snapshotKey, b, 0).Err()
}
