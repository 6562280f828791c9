package statistics

import (
	"errors"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillblog/quill/internal/pkg/cache"
)

func setupTestCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return mr
}

func TestGetSiteStatsFromCache(t *testing.T) {
	mr := setupTestCache(t)

	require.NoError(t, mr.Set(CacheKeyPostsTotal, "12"))
	require.NoError(t, mr.Set(CacheKeyPostsPublished, "9"))
	require.NoError(t, mr.Set(CacheKeyViewsTotal, "3400"))
	require.NoError(t, mr.Set(CacheKeyCategories, "4"))
	require.NoError(t, mr.Set(CacheKeyTags, "17"))

	stats := GetSiteStats()

	assert.Equal(t, int64(12), stats.TotalPosts)
	assert.Equal(t, int64(9), stats.PublishedPosts)
	assert.Equal(t, int64(3400), stats.TotalViews)
	assert.Equal(t, int64(4), stats.Categories)
	assert.Equal(t, int64(17), stats.Tags)
}

func TestGetCachedCountHitSkipsLoader(t *testing.T) {
	mr := setupTestCache(t)

	require.NoError(t, mr.Set(CacheKeyPostsTotal, "42"))

	got := getCachedCount(CacheKeyPostsTotal, func() (int64, error) {
		t.Fatal("loader must not run on a cache hit")
		return 0, nil
	})

	assert.Equal(t, int64(42), got)
}

func TestGetCachedCountMissLoadsAndRepopulates(t *testing.T) {
	mr := setupTestCache(t)

	got := getCachedCount(CacheKeyTags, func() (int64, error) { return 7, nil })
	assert.Equal(t, int64(7), got)

	cached, err := mr.Get(CacheKeyTags)
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatInt(7, 10), cached)
}

func TestGetCachedCountLoaderErrorReturnsZero(t *testing.T) {
	setupTestCache(t)

	got := getCachedCount(CacheKeyCategories, func() (int64, error) {
		return 0, errors.New("db unavailable")
	})

	assert.Equal(t, int64(0), got)
}

func TestCacheUpdateTimer(t *testing.T) {
	ResetCacheUpdateTimer()
	assert.True(t, ShouldUpdateCache())
}
