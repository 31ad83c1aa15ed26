package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
)

const (
	// Key format: swcache:<generation>:<request-url>
	cachePrefix   = "swcache"
	generationSet = "swcache:generations"
)

// CacheStore implements the cache-storage port on Redis. Each generation is
// a key prefix plus a membership entry in a generation index set, so the
// activation purge can enumerate and drop whole generations.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a CacheStore wrapping the given Redis client.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

func (s *CacheStore) entryKey(generation, key string) string {
	return fmt.Sprintf("%s:%s:%s", cachePrefix, generation, key)
}

func (s *CacheStore) Put(ctx context.Context, generation, key string, res *domain.CachedResponse) error {
	blob, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("cache put encode: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.entryKey(generation, key), blob, 0)
	pipe.SAdd(ctx, generationSet, generation)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

func (s *CacheStore) Match(ctx context.Context, generation, key string) (*domain.CachedResponse, error) {
	blob, err := s.client.Get(ctx, s.entryKey(generation, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("cache match: %w", err)
	}

	var res domain.CachedResponse
	if err := json.Unmarshal(blob, &res); err != nil {
		return nil, fmt.Errorf("cache match decode: %w", err)
	}
	return &res, nil
}

func (s *CacheStore) Generations(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, generationSet).Result()
	if err != nil {
		return nil, fmt.Errorf("cache generations: %w", err)
	}
	return names, nil
}

func (s *CacheStore) Delete(ctx context.Context, generation string) error {
	pattern := fmt.Sprintf("%s:%s:*", cachePrefix, generation)

	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete entry: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache delete scan: %w", err)
	}

	if err := s.client.SRem(ctx, generationSet, generation).Err(); err != nil {
		return fmt.Errorf("cache delete index: %w", err)
	}
	return nil
}
