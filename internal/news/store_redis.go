// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/newsdesk/internal/platform/constants"
)

// ErrCacheMiss is returned by [Cache.Get] for absent keys.
var ErrCacheMiss = errors.New("news: cache miss")

// Cache is the key-value store behind [CachedRepository].
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
}

// # Redis Cache

// RedisCache implements [Cache] with go-redis.
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache wraps a connected client.
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

func (cache *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := cache.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis_news_get_failed: %w", err)
	}
	return value, nil
}

func (cache *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := cache.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis_news_set_failed: %w", err)
	}
	return nil
}

func (cache *RedisCache) Incr(ctx context.Context, key string) (int64, error) {
	value, err := cache.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_news_incr_failed: %w", err)
	}
	return value, nil
}

// # Cached Repository

// CachedRepository caches public entry lists in front of another [Repository].
//
// Every cached key embeds a generation counter; writes bump the counter, so
// stale lists become unreachable at once and expire by TTL. Entries scheduled
// for a future publication date may appear up to one TTL late. Cache failures
// are logged and never fail a read.
type CachedRepository struct {
	Repository
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRepository wraps next with cache.
func NewCachedRepository(next Repository, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{Repository: next, cache: cache, ttl: ttl, logger: logger}
}

type cachedPage struct {
	Entries []*Entry `json:"entries"`
	Total   int      `json:"total"`
}

func (repository *CachedRepository) ListEntries(ctx context.Context, filter Filter, limit, offset int) ([]*Entry, int, error) {
	if !filter.PublishedOnly {
		return repository.Repository.ListEntries(ctx, filter, limit, offset)
	}

	key, err := repository.key(ctx, filter, limit, offset)
	if err != nil {
		repository.logger.WarnContext(ctx, "news_cache_unavailable", slog.Any("error", err))
		return repository.Repository.ListEntries(ctx, filter, limit, offset)
	}

	if raw, err := repository.cache.Get(ctx, key); err == nil {
		var page cachedPage
		if err := json.Unmarshal(raw, &page); err == nil {
			return page.Entries, page.Total, nil
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		repository.logger.WarnContext(ctx, "news_cache_read_failed", slog.Any("error", err))
	}

	entries, total, err := repository.Repository.ListEntries(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	raw, err := json.Marshal(cachedPage{Entries: entries, Total: total})
	if err == nil {
		err = repository.cache.Set(ctx, key, raw, repository.ttl)
	}
	if err != nil {
		repository.logger.WarnContext(ctx, "news_cache_write_failed", slog.Any("error", err))
	}

	return entries, total, nil
}

// key renders the cache key of a list query. Filter.Now is not part of the key.
func (repository *CachedRepository) key(ctx context.Context, filter Filter, limit, offset int) (string, error) {
	generation := "0"
	raw, err := repository.cache.Get(ctx, constants.RedisKeyNewsGeneration)
	switch {
	case err == nil:
		generation = string(raw)
	case !errors.Is(err, ErrCacheMiss):
		return "", err
	}

	return constants.RedisPrefixNewsRecent + strings.Join([]string{
		generation,
		filter.Language,
		strconv.FormatBool(filter.ExcludeHidden),
		filter.CategorySlug,
		filter.AuthorID,
		strconv.Itoa(limit),
		strconv.Itoa(offset),
	}, "|"), nil
}

// invalidate bumps the generation after a successful write.
func (repository *CachedRepository) invalidate(ctx context.Context, err error) error {
	if err != nil {
		return err
	}
	if _, cacheErr := repository.cache.Incr(ctx, constants.RedisKeyNewsGeneration); cacheErr != nil {
		repository.logger.WarnContext(ctx, "news_cache_invalidate_failed", slog.Any("error", cacheErr))
	}
	return nil
}

func (repository *CachedRepository) CreateEntry(ctx context.Context, entry *Entry, categoryIDs []int64) error {
	return repository.invalidate(ctx, repository.Repository.CreateEntry(ctx, entry, categoryIDs))
}

func (repository *CachedRepository) UpdateEntry(ctx context.Context, entry *Entry, categoryIDs []int64) error {
	return repository.invalidate(ctx, repository.Repository.UpdateEntry(ctx, entry, categoryIDs))
}

func (repository *CachedRepository) DeleteEntry(ctx context.Context, id int64) error {
	return repository.invalidate(ctx, repository.Repository.DeleteEntry(ctx, id))
}

func (repository *CachedRepository) SetPublished(ctx context.Context, id int64, language string, published bool) error {
	return repository.invalidate(ctx, repository.Repository.SetPublished(ctx, id, language, published))
}
