package identity

import (
	"context"
	"time"
)

// Cache stores resolved principals keyed by user id.
type Cache interface {
	GetByUserID(ctx context.Context, userID int64) (*Principal, bool)
	SetByUserID(ctx context.Context, userID int64, principal *Principal, ttl time.Duration)
	DeleteByUserID(ctx context.Context, userID int64)
}

type noopCache struct{}

func (noopCache) GetByUserID(context.Context, int64) (*Principal, bool) {
	return nil, false
}

func (noopCache) SetByUserID(context.Context, int64, *Principal, time.Duration) {}

func (noopCache) DeleteByUserID(context.Context, int64) {}
