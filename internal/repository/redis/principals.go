package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	identitydomain "swipe-go/internal/domain/identity"
	"swipe-go/pkg/logger"
)

const principalKeyPrefix = "swipe:principal:"

// NewClient connects and pings the server.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

// PrincipalCache shares resolved principals between instances. Redis errors
// degrade to cache misses.
type PrincipalCache struct {
	rdb *redis.Client
	log logger.Logger
}

func NewPrincipalCache(rdb *redis.Client, log logger.Logger) *PrincipalCache {
	return &PrincipalCache{rdb: rdb, log: log}
}

func (c *PrincipalCache) GetByUserID(ctx context.Context, userID int64) (*identitydomain.Principal, bool) {
	raw, err := c.rdb.Get(ctx, principalKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("redis: principal get failed", "user_id", userID, "err", err)
		}
		return nil, false
	}

	var principal identitydomain.Principal
	if err := json.Unmarshal(raw, &principal); err != nil {
		c.log.Warn("redis: principal decode failed", "user_id", userID, "err", err)
		return nil, false
	}
	return &principal, true
}

func (c *PrincipalCache) SetByUserID(ctx context.Context, userID int64, principal *identitydomain.Principal, ttl time.Duration) {
	if principal == nil || ttl <= 0 {
		c.DeleteByUserID(ctx, userID)
		return
	}

	raw, err := json.Marshal(principal)
	if err != nil {
		c.log.Warn("redis: principal encode failed", "user_id", userID, "err", err)
		return
	}
	if err := c.rdb.Set(ctx, principalKey(userID), raw, ttl).Err(); err != nil {
		c.log.Warn("redis: principal set failed", "user_id", userID, "err", err)
	}
}

func (c *PrincipalCache) DeleteByUserID(ctx context.Context, userID int64) {
	if err := c.rdb.Del(ctx, principalKey(userID)).Err(); err != nil {
		c.log.Warn("redis: principal delete failed", "user_id", userID, "err", err)
	}
}

func principalKey(userID int64) string {
	return principalKeyPrefix + strconv.FormatInt(userID, 10)
}
