// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package news_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/newsdesk/internal/news"
	"github.com/taibuivan/newsdesk/internal/news/newstest"
)

type memoryCache struct {
	mu     sync.Mutex
	values map[string][]byte
	broken bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string][]byte)}
}

func (cache *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if cache.broken {
		return nil, errors.New("connection refused")
	}
	value, ok := cache.values[key]
	if !ok {
		return nil, news.ErrCacheMiss
	}
	return value, nil
}

func (cache *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if cache.broken {
		return errors.New("connection refused")
	}
	cache.values[key] = value
	return nil
}

func (cache *memoryCache) Incr(_ context.Context, key string) (int64, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if cache.broken {
		return 0, errors.New("connection refused")
	}
	current, _ := strconv.ParseInt(string(cache.values[key]), 10, 64)
	current++
	cache.values[key] = []byte(strconv.FormatInt(current, 10))
	return current, nil
}

/*
TestCachedRepository serves repeated public reads from cache until a write.
*/
func TestCachedRepository(t *testing.T) {
	ctx := context.Background()
	backing := newstest.NewRepository()
	cached := news.NewCachedRepository(backing, newMemoryCache(), time.Minute, discardLogger())
	service := newService(cached)

	_, err := service.Create(ctx, news.EntryInput{Translations: []news.TranslationInput{published("en", "First")}}, "", "")
	require.NoError(t, err)

	for range 3 {
		entries, err := service.Recent(ctx, news.RecentQuery{Language: "en"})
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	}
	assert.Equal(t, 1, backing.Calls, "repeated reads hit the cache")

	_, err = service.Create(ctx, news.EntryInput{Translations: []news.TranslationInput{published("en", "Second")}}, "", "")
	require.NoError(t, err)

	entries, err := service.Recent(ctx, news.RecentQuery{Language: "en"})
	require.NoError(t, err)
	assert.Len(t, entries, 2, "writes invalidate cached lists")
	assert.Equal(t, 2, backing.Calls)

	_, _, err = service.ListPublished(ctx, "en", true, 10, 0)
	require.NoError(t, err)
	_, _, err = service.ListPublished(ctx, "en", true, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, backing.Calls, "admin lists bypass the cache")
}

/*
TestCachedRepository_Unavailable falls back to the backing repository.
*/
func TestCachedRepository_Unavailable(t *testing.T) {
	ctx := context.Background()
	cache := newMemoryCache()
	cache.broken = true

	backing := newstest.NewRepository()
	service := newService(news.NewCachedRepository(backing, cache, time.Minute, discardLogger()))

	_, err := service.Create(ctx, news.EntryInput{Translations: []news.TranslationInput{published("en", "Still works")}}, "", "")
	require.NoError(t, err)

	entries, err := service.Recent(ctx, news.RecentQuery{Language: "en"})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
