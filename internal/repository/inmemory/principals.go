package inmemory

import (
	"context"
	"sync"
	"time"

	identitydomain "swipe-go/internal/domain/identity"
)

type PrincipalCache struct {
	mu    sync.RWMutex
	items map[int64]principalItem
	now   func() time.Time
}

type principalItem struct {
	value     identitydomain.Principal
	expiresAt time.Time
}

func NewPrincipalCache() *PrincipalCache {
	return &PrincipalCache{
		items: make(map[int64]principalItem),
		now:   time.Now,
	}
}

func (c *PrincipalCache) GetByUserID(_ context.Context, userID int64) (*identitydomain.Principal, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[userID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[userID]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, userID)
		}
		c.mu.Unlock()
		return nil, false
	}

	value := item.value
	return &value, true
}

func (c *PrincipalCache) SetByUserID(ctx context.Context, userID int64, principal *identitydomain.Principal, ttl time.Duration) {
	if principal == nil || ttl <= 0 {
		c.DeleteByUserID(ctx, userID)
		return
	}

	c.mu.Lock()
	c.items[userID] = principalItem{
		value:     *principal,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *PrincipalCache) DeleteByUserID(_ context.Context, userID int64) {
	c.mu.Lock()
	delete(c.items, userID)
	c.mu.Unlock()
}

func (c *PrincipalCache) Clear() {
	c.mu.Lock()
	c.items = make(map[int64]principalItem)
	c.mu.Unlock()
}
