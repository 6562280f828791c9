package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/quillblog/quill/app/repository"
	"github.com/quillblog/quill/internal/pkg/readingtime"
	"github.com/quillblog/quill/internal/pkg/statistics"
)

// queryFailed logs the failing operation with its key parameters and returns
// a single opaque failure to the caller. This layer never retries.
func queryFailed(c *fiber.Ctx, operation string, err error) error {
	log.Printf("%s failed: %v", operation, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "query_failed",
		"message": "could not fetch content",
	})
}

func pageParams(c *fiber.Ctx) (int, int) {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "10"))
	return page, pageSize
}

func postPageJSON(page *repository.PostPage) fiber.Map {
	return fiber.Map{
		"posts":       page.Posts,
		"total":       page.Total,
		"page":        page.Page,
		"page_size":   page.PageSize,
		"total_pages": page.TotalPages,
	}
}

// HandleBlogIndex returns the published posts, newest first
func HandleBlogIndex(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)

	result, err := repository.GetGlobalRepositories().Post.GetPublished(page, pageSize)
	if err != nil {
		return queryFailed(c, "list published posts", err)
	}

	return c.JSON(postPageJSON(result))
}

// HandleBlogShow returns a single published post by slug and counts the view
func HandleBlogShow(c *fiber.Ctx) error {
	postSlug := c.Params("slug")
	postRepo := repository.GetGlobalRepositories().Post

	post, err := postRepo.GetPublishedBySlug(postSlug)
	if err != nil {
		return queryFailed(c, "get post "+postSlug, err)
	}
	if post == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "not_found",
			"message": "post not found",
		})
	}

	views, err := postRepo.IncrementViewCount(post.ID)
	if err != nil {
		// The page is still served when only the counter write fails
		log.Printf("increment view count for post %d failed: %v", post.ID, err)
		views = post.ViewCount
	}
	post.ViewCount = views

	content := ""
	if post.Content != nil {
		content = *post.Content
	}

	return c.JSON(fiber.Map{
		"post":         post,
		"reading_time": readingtime.Estimate(content),
	})
}

// HandleBlogSearch searches published posts by title, content and excerpt
func HandleBlogSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	page, pageSize := pageParams(c)

	result, err := repository.GetGlobalRepositories().Post.Search(query, page, pageSize)
	if err != nil {
		return queryFailed(c, "search posts", err)
	}

	response := postPageJSON(&result.PostPage)
	response["query"] = result.Query
	return c.JSON(response)
}

// HandleBlogCategory returns the published posts in a category. An unknown
// slug falls back to the unfiltered published list by default; passing
// strict=1 surfaces the not-found instead.
func HandleBlogCategory(c *fiber.Ctx) error {
	categorySlug := c.Params("slug")
	page, pageSize := pageParams(c)
	postRepo := repository.GetGlobalRepositories().Post

	result, err := postRepo.GetByCategory(categorySlug, page, pageSize)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			if c.QueryBool("strict") {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error":   "not_found",
					"message": "category not found",
				})
			}
			result, err = postRepo.GetPublished(page, pageSize)
			if err != nil {
				return queryFailed(c, "list published posts", err)
			}
			response := postPageJSON(result)
			response["category"] = nil
			response["fallback"] = true
			return c.JSON(response)
		}
		return queryFailed(c, "list posts in category "+categorySlug, err)
	}

	response := postPageJSON(result)
	response["category"] = categorySlug
	return c.JSON(response)
}

// HandleBlogTag returns the published posts carrying a tag
func HandleBlogTag(c *fiber.Ctx) error {
	tagSlug := c.Params("slug")
	page, pageSize := pageParams(c)

	result, err := repository.GetGlobalRepositories().Post.GetByTag(tagSlug, page, pageSize)
	if err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "not_found",
				"message": "tag not found",
			})
		}
		return queryFailed(c, "list posts with tag "+tagSlug, err)
	}

	response := postPageJSON(result)
	response["tag"] = tagSlug
	return c.JSON(response)
}

func aggregateLimit(c *fiber.Ctx) int {
	limit, _ := strconv.Atoi(c.Query("limit", "5"))
	if limit < 1 {
		limit = 5
	}
	if limit > 20 {
		limit = 20
	}
	return limit
}

// HandleBlogPopular returns the most viewed published posts
func HandleBlogPopular(c *fiber.Ctx) error {
	posts, err := repository.GetGlobalRepositories().Post.GetMostViewed(aggregateLimit(c))
	if err != nil {
		return queryFailed(c, "list popular posts", err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// HandleBlogRecent returns the most recently published posts
func HandleBlogRecent(c *fiber.Ctx) error {
	posts, err := repository.GetGlobalRepositories().Post.GetRecent(aggregateLimit(c))
	if err != nil {
		return queryFailed(c, "list recent posts", err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// HandleCategoryList returns all categories with their published-post counts
func HandleCategoryList(c *fiber.Ctx) error {
	counts, err := repository.GetGlobalRepositories().Category.ListWithCounts()
	if err != nil {
		return queryFailed(c, "list categories", err)
	}

	categories := make([]fiber.Map, len(counts))
	for i, entry := range counts {
		categories[i] = fiber.Map{
			"category":   entry.Category,
			"post_count": entry.PostCount,
		}
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// HandleTagList returns all tags with their published-post counts
func HandleTagList(c *fiber.Ctx) error {
	counts, err := repository.GetGlobalRepositories().Tag.ListWithCounts()
	if err != nil {
		return queryFailed(c, "list tags", err)
	}

	tags := make([]fiber.Map, len(counts))
	for i, entry := range counts {
		tags[i] = fiber.Map{
			"tag":        entry.Tag,
			"post_count": entry.PostCount,
		}
	}
	return c.JSON(fiber.Map{"tags": tags})
}

// HandleSiteStats returns the cached site-wide counters
func HandleSiteStats(c *fiber.Ctx) error {
	statistics.UpdateCacheIfNeeded()
	return c.JSON(statistics.GetSiteStats())
}
