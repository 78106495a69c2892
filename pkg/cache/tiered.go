package cache

import (
	"context"
	"errors"
	"time"
)

// Tiered reads through a fast local tier before falling back to a shared one.
// Hits in the shared tier are copied into the local tier with localTTL.
type Tiered struct {
	local    Client
	shared   Client
	localTTL time.Duration
}

var _ Client = &Tiered{}

// NewTiered returns local alone when shared is nil.
func NewTiered(local, shared Client, localTTL time.Duration) Client {
	if shared == nil {
		return local
	}
	return &Tiered{local: local, shared: shared, localTTL: localTTL}
}

func (t *Tiered) Get(ctx context.Context, key string) ([]byte, error) {
	if val, err := t.local.Get(ctx, key); err == nil {
		return val, nil
	}

	val, err := t.shared.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	_ = t.local.Set(ctx, key, val, t.localTTL)
	return val, nil
}

// Set writes both tiers. A shared tier failure is reported, the local write still stands.
func (t *Tiered) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	localTTL := t.localTTL
	if ttl > 0 && ttl < localTTL {
		localTTL = ttl
	}
	if err := t.local.Set(ctx, key, value, localTTL); err != nil {
		return err
	}
	return t.shared.Set(ctx, key, value, ttl)
}

func (t *Tiered) Delete(ctx context.Context, key string) error {
	return errors.Join(t.local.Delete(ctx, key), t.shared.Delete(ctx, key))
}
