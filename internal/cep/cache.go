package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache keeps addresses that were found so repeated lookups skip the providers.
type Cache interface {
	Get(ctx context.Context, code string) (*Address, bool, error)
	Set(ctx context.Context, code string, addr *Address) error
}

// RedisCache stores addresses as JSON strings under "cep:<code>".
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

// Key returns the redis key for a normalized CEP.
func Key(code string) string {
	return "cep:" + code
}

func (r *RedisCache) Get(ctx context.Context, code string) (*Address, bool, error) {
	b, err := r.rdb.Get(ctx, Key(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var addr Address
	if err := json.Unmarshal(b, &addr); err != nil {
		return nil, false, fmt.Errorf("decode cached address: %w", err)
	}
	return &addr, true, nil
}

func (r *RedisCache) Set(ctx context.Context, code string, addr *Address) error {
	b, err := json.Marshal(addr)
	if err != nil {
		return fmt.Errorf("encode address: %w", err)
	}
	if err := r.rdb.Set(ctx, Key(code), b, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
