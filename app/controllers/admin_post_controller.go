package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/quillblog/quill/app/models"
	"github.com/quillblog/quill/app/repository"
	"github.com/quillblog/quill/internal/pkg/slugify"
	"github.com/quillblog/quill/internal/pkg/usercontext"
)

// AdminPostController handles admin post-related HTTP requests using the
// repository pattern
type AdminPostController struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	tagRepo      repository.TagRepository
}

// NewAdminPostController creates a new admin post controller with repositories
func NewAdminPostController(postRepo repository.PostRepository, categoryRepo repository.CategoryRepository, tagRepo repository.TagRepository) *AdminPostController {
	return &AdminPostController{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
	}
}

// handleError is a helper method for consistent error handling
func (apc *AdminPostController) handleError(c *fiber.Ctx, message string, err error) error {
	fm := fiber.Map{
		"type":    "error",
		"message": message + ": " + err.Error(),
	}
	return flash.WithError(c, fm).Redirect("/admin/posts")
}

// HandleAdminPosts returns the post management listing, all statuses included
func (apc *AdminPostController) HandleAdminPosts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	result, err := apc.postRepo.List(page, pageSize)
	if err != nil {
		return apc.handleError(c, "Failed to load posts", err)
	}

	return c.JSON(fiber.Map{
		"posts":       result.Posts,
		"total":       result.Total,
		"page":        result.Page,
		"page_size":   result.PageSize,
		"total_pages": result.TotalPages,
		"flash":       flash.Get(c),
	})
}

// HandleAdminPostStore handles post creation
func (apc *AdminPostController) HandleAdminPostStore(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	title := c.FormValue("title")
	content := c.FormValue("content")
	postSlug := c.FormValue("slug")
	status := c.FormValue("status", models.POST_STATUS_DRAFT)

	if title == "" {
		fm := fiber.Map{
			"type":    "error",
			"message": "Title is required",
		}
		return flash.WithError(c, fm).Redirect("/admin/posts")
	}

	// Derive the slug from the title when none was supplied
	if postSlug == "" {
		postSlug = slugify.Slugify(title)
	}

	slugExists, err := apc.postRepo.SlugExists(postSlug)
	if err != nil {
		return apc.handleError(c, "Failed to check slug", err)
	}
	if slugExists {
		postSlug = slugify.WithTimestamp(postSlug, time.Now())
	}

	post := &models.Post{
		Title:          title,
		Slug:           postSlug,
		Content:        optionalString(content),
		Excerpt:        optionalString(c.FormValue("excerpt")),
		CoverImage:     optionalString(c.FormValue("cover_image")),
		SEOTitle:       optionalString(c.FormValue("seo_title")),
		SEODescription: optionalString(c.FormValue("seo_description")),
		Status:         models.POST_STATUS_DRAFT,
		AIGenerated:    c.FormValue("ai_generated") == "1",
		AuthorID:       &userID,
	}
	if status == models.POST_STATUS_PUBLISHED {
		post.Publish(time.Now())
	} else if status == models.POST_STATUS_ARCHIVED {
		post.Archive()
	}

	if err := apc.postRepo.Create(post); err != nil {
		return apc.handleError(c, "Failed to create post", err)
	}

	if err := apc.assignTaxonomies(c, post.ID); err != nil {
		return apc.handleError(c, "Failed to assign categories and tags", err)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Post created successfully",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/posts")
}

// HandleAdminPostEdit returns a single post for the edit form
func (apc *AdminPostController) HandleAdminPostEdit(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Redirect("/admin/posts")
	}

	post, err := apc.postRepo.GetByID(id)
	if err != nil {
		return apc.handleError(c, "Failed to load post", err)
	}
	if post == nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Post not found",
		}
		return flash.WithError(c, fm).Redirect("/admin/posts")
	}

	return c.JSON(fiber.Map{"post": post, "flash": flash.Get(c)})
}

// HandleAdminPostUpdate handles post updates with partial fields
func (apc *AdminPostController) HandleAdminPostUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Redirect("/admin/posts")
	}

	existing, err := apc.postRepo.GetByID(id)
	if err != nil {
		return apc.handleError(c, "Failed to load post", err)
	}
	if existing == nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Post not found",
		}
		return flash.WithError(c, fm).Redirect("/admin/posts")
	}

	fields := map[string]interface{}{}
	for _, name := range []string{"title", "content", "excerpt", "cover_image", "seo_title", "seo_description"} {
		if value := c.FormValue(name); value != "" {
			fields[name] = value
		}
	}
	if value := c.FormValue("ai_generated"); value != "" {
		fields["ai_generated"] = value == "1"
	}

	if postSlug := c.FormValue("slug"); postSlug != "" && postSlug != existing.Slug {
		slugExists, err := apc.postRepo.SlugExistsExceptID(postSlug, id)
		if err != nil {
			return apc.handleError(c, "Failed to check slug", err)
		}
		if slugExists {
			postSlug = slugify.WithTimestamp(postSlug, time.Now())
		}
		fields["slug"] = postSlug
	}

	// Status transitions are decided here, not in the repository. The first
	// transition to published stamps published_at.
	if status := c.FormValue("status"); status != "" {
		fields["status"] = status
		if status == models.POST_STATUS_PUBLISHED && existing.PublishedAt == nil {
			fields["published_at"] = time.Now()
		}
	}

	post, err := apc.postRepo.Update(id, fields)
	if err != nil {
		return apc.handleError(c, "Failed to update post", err)
	}
	if post == nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Post not found",
		}
		return flash.WithError(c, fm).Redirect("/admin/posts")
	}

	if err := apc.assignTaxonomies(c, id); err != nil {
		return apc.handleError(c, "Failed to assign categories and tags", err)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Post updated successfully",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/posts")
}

// HandleAdminPostPublish publishes a post directly from the listing
func (apc *AdminPostController) HandleAdminPostPublish(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Redirect("/admin/posts")
	}

	existing, err := apc.postRepo.GetByID(id)
	if err != nil {
		return apc.handleError(c, "Failed to load post", err)
	}
	if existing == nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Post not found",
		}
		return flash.WithError(c, fm).Redirect("/admin/posts")
	}

	fields := map[string]interface{}{"status": models.POST_STATUS_PUBLISHED}
	if existing.PublishedAt == nil {
		fields["published_at"] = time.Now()
	}

	if _, err := apc.postRepo.Update(id, fields); err != nil {
		return apc.handleError(c, "Failed to publish post", err)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Post published successfully",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/posts")
}

// HandleAdminPostDelete handles post deletion
func (apc *AdminPostController) HandleAdminPostDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Redirect("/admin/posts")
	}

	post, err := apc.postRepo.GetByID(id)
	if err != nil {
		return apc.handleError(c, "Failed to load post", err)
	}
	if post == nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Post not found",
		}
		return flash.WithError(c, fm).Redirect("/admin/posts")
	}

	if err := apc.postRepo.Delete(id); err != nil {
		return apc.handleError(c, "Failed to delete post", err)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Post deleted successfully",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/posts")
}

// assignTaxonomies replaces category and tag assignments from the submitted
// id lists. Absent form fields leave the assignments untouched; unknown ids
// are dropped rather than failing the whole write.
func (apc *AdminPostController) assignTaxonomies(c *fiber.Ctx, postID uint) error {
	if raw := c.FormValue("category_ids"); raw != "" {
		ids, err := parseIDList(raw)
		if err != nil {
			return err
		}
		known := make([]uint, 0, len(ids))
		for _, id := range ids {
			category, err := apc.categoryRepo.GetByID(id)
			if err != nil {
				return err
			}
			if category != nil {
				known = append(known, id)
			}
		}
		if err := apc.postRepo.SetCategories(postID, known); err != nil {
			return err
		}
	}
	if raw := c.FormValue("tag_ids"); raw != "" {
		ids, err := parseIDList(raw)
		if err != nil {
			return err
		}
		known := make([]uint, 0, len(ids))
		for _, id := range ids {
			tag, err := apc.tagRepo.GetByID(id)
			if err != nil {
				return err
			}
			if tag != nil {
				known = append(known, id)
			}
		}
		if err := apc.postRepo.SetTags(postID, known); err != nil {
			return err
		}
	}
	return nil
}

// parseIDParam reads the numeric :id route parameter
func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseIDList parses a comma separated id list from a form value
func parseIDList(raw string) ([]uint, error) {
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// optionalString maps an empty form value to NULL instead of an empty string
func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// ============================================================================
// GLOBAL ADMIN POST CONTROLLER INSTANCE - Singleton Pattern
// ============================================================================

var adminPostController *AdminPostController

// InitializeAdminPostController initializes the global admin post controller
func InitializeAdminPostController() {
	factory := repository.GetGlobalFactory()
	adminPostController = NewAdminPostController(
		factory.GetPostRepository(),
		factory.GetCategoryRepository(),
		factory.GetTagRepository(),
	)
}

// GetAdminPostController returns the global admin post controller instance
func GetAdminPostController() *AdminPostController {
	if adminPostController == nil {
		InitializeAdminPostController()
	}
	return adminPostController
}
