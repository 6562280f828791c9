package statistics

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/quillblog/quill/app/repository"
	"github.com/quillblog/quill/internal/pkg/cache"
)

const (
	CacheKeyPostsTotal     = "statistics:posts:total"
	CacheKeyPostsPublished = "statistics:posts:published"
	CacheKeyViewsTotal     = "statistics:views:total"
	CacheKeyCategories     = "statistics:categories:total"
	CacheKeyTags           = "statistics:tags:total"
	CacheExpiration        = 30 * time.Minute
)

// SiteStats holds the site-wide counters for the public stats endpoint
type SiteStats struct {
	TotalPosts     int64 `json:"total_posts"`
	PublishedPosts int64 `json:"published_posts"`
	TotalViews     int64 `json:"total_views"`
	Categories     int64 `json:"categories"`
	Tags           int64 `json:"tags"`
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the counters are due for a refresh
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached counters when the refresh
// interval has elapsed
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next UpdateCacheIfNeeded to refresh
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache recomputes all site counters and stores them in the
// cache. Counts of public-facing numbers only include published posts.
func UpdateStatisticsCache() error {
	repos := repository.GetGlobalRepositories()

	totalPosts, err := repos.Post.Count()
	if err != nil {
		log.Printf("Error counting posts: %v", err)
		return err
	}

	publishedPosts, err := repos.Post.CountPublished()
	if err != nil {
		log.Printf("Error counting published posts: %v", err)
		return err
	}

	totalViews, err := repos.Post.TotalPublishedViews()
	if err != nil {
		log.Printf("Error summing view counts: %v", err)
		return err
	}

	categories, err := repos.Category.Count()
	if err != nil {
		log.Printf("Error counting categories: %v", err)
		return err
	}

	tags, err := repos.Tag.Count()
	if err != nil {
		log.Printf("Error counting tags: %v", err)
		return err
	}

	values := map[string]int64{
		CacheKeyPostsTotal:     totalPosts,
		CacheKeyPostsPublished: publishedPosts,
		CacheKeyViewsTotal:     totalViews,
		CacheKeyCategories:     categories,
		CacheKeyTags:           tags,
	}
	for key, value := range values {
		if err := cache.Set(key, strconv.FormatInt(value, 10), CacheExpiration); err != nil {
			log.Printf("Error caching %s: %v", key, err)
			return err
		}
	}

	return nil
}

// GetSiteStats returns the cached site counters, refreshing the cache on a
// miss.
func GetSiteStats() SiteStats {
	return SiteStats{
		TotalPosts:     getCachedCount(CacheKeyPostsTotal, func() (int64, error) { return repository.GetGlobalRepositories().Post.Count() }),
		PublishedPosts: getCachedCount(CacheKeyPostsPublished, func() (int64, error) { return repository.GetGlobalRepositories().Post.CountPublished() }),
		TotalViews:     getCachedCount(CacheKeyViewsTotal, func() (int64, error) { return repository.GetGlobalRepositories().Post.TotalPublishedViews() }),
		Categories:     getCachedCount(CacheKeyCategories, func() (int64, error) { return repository.GetGlobalRepositories().Category.Count() }),
		Tags:           getCachedCount(CacheKeyTags, func() (int64, error) { return repository.GetGlobalRepositories().Tag.Count() }),
	}
}

// getCachedCount reads a counter from the cache, falling back to the
// database and repopulating the cache on a miss.
func getCachedCount(key string, load func() (int64, error)) int64 {
	val, err := cache.Get(key)
	if err == nil {
		if count, err := strconv.ParseInt(val, 10, 64); err == nil {
			return count
		}
	}

	count, err := load()
	if err != nil {
		log.Printf("Error loading counter %s: %v", key, err)
		return 0
	}

	if err := cache.Set(key, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
		log.Printf("Error caching counter %s: %v", key, err)
	}

	return count
}
