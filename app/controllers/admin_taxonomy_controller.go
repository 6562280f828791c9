package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/quillblog/quill/app/models"
	"github.com/quillblog/quill/app/repository"
	"github.com/quillblog/quill/internal/pkg/slugify"
)

// AdminTaxonomyController handles admin category and tag CRUD
type AdminTaxonomyController struct {
	categoryRepo repository.CategoryRepository
	tagRepo      repository.TagRepository
}

// NewAdminTaxonomyController creates a new admin taxonomy controller
func NewAdminTaxonomyController(categoryRepo repository.CategoryRepository, tagRepo repository.TagRepository) *AdminTaxonomyController {
	return &AdminTaxonomyController{
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
	}
}

func (atc *AdminTaxonomyController) handleError(c *fiber.Ctx, redirect, message string, err error) error {
	fm := fiber.Map{
		"type":    "error",
		"message": message + ": " + err.Error(),
	}
	return flash.WithError(c, fm).Redirect(redirect)
}

// HandleAdminCategories returns all categories with counts for the
// management listing
func (atc *AdminTaxonomyController) HandleAdminCategories(c *fiber.Ctx) error {
	counts, err := atc.categoryRepo.ListWithCounts()
	if err != nil {
		return atc.handleError(c, "/admin", "Failed to load categories", err)
	}

	categories := make([]fiber.Map, len(counts))
	for i, entry := range counts {
		categories[i] = fiber.Map{
			"category":   entry.Category,
			"post_count": entry.PostCount,
		}
	}
	return c.JSON(fiber.Map{"categories": categories, "flash": flash.Get(c)})
}

// HandleAdminCategoryStore handles category creation
func (atc *AdminTaxonomyController) HandleAdminCategoryStore(c *fiber.Ctx) error {
	name := c.FormValue("name")
	if name == "" {
		fm := fiber.Map{
			"type":    "error",
			"message": "Name is required",
		}
		return flash.WithError(c, fm).Redirect("/admin/categories")
	}

	categorySlug := c.FormValue("slug")
	if categorySlug == "" {
		categorySlug = slugify.Slugify(name)
	}
	slugExists, err := atc.categoryRepo.SlugExists(categorySlug)
	if err != nil {
		return atc.handleError(c, "/admin/categories", "Failed to check slug", err)
	}
	if slugExists {
		categorySlug = slugify.WithTimestamp(categorySlug, time.Now())
	}

	category := &models.Category{
		Name:        name,
		Slug:        categorySlug,
		Description: optionalString(c.FormValue("description")),
	}
	if err := atc.categoryRepo.Create(category); err != nil {
		return atc.handleError(c, "/admin/categories", "Failed to create category", err)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Category created successfully",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/categories")
}

// HandleAdminCategoryUpdate handles category updates
func (atc *AdminTaxonomyController) HandleAdminCategoryUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Redirect("/admin/categories")
	}

	fields := map[string]interface{}{}
	if name := c.FormValue("name"); name != "" {
		fields["name"] = name
	}
	if description := c.FormValue("description"); description != "" {
		fields["description"] = description
	}
	if categorySlug := c.FormValue("slug"); categorySlug != "" {
		slugExists, err := atc.categoryRepo.SlugExistsExceptID(categorySlug, id)
		if err != nil {
			return atc.handleError(c, "/admin/categories", "Failed to check slug", err)
		}
		if slugExists {
			categorySlug = slugify.WithTimestamp(categorySlug, time.Now())
		}
		fields["slug"] = categorySlug
	}

	category, err := atc.categoryRepo.Update(id, fields)
	if err != nil {
		return atc.handleError(c, "/admin/categories", "Failed to update category", err)
	}
	if category == nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Category not found",
		}
		return flash.WithError(c, fm).Redirect("/admin/categories")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Category updated successfully",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/categories")
}

// HandleAdminCategoryDelete deletes a category and its junction rows
func (atc *AdminTaxonomyController) HandleAdminCategoryDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Redirect("/admin/categories")
	}

	category, err := atc.categoryRepo.GetByID(id)
	if err != nil {
		return atc.handleError(c, "/admin/categories", "Failed to load category", err)
	}
	if category == nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Category not found",
		}
		return flash.WithError(c, fm).Redirect("/admin/categories")
	}

	if err := atc.categoryRepo.Delete(id); err != nil {
		return atc.handleError(c, "/admin/categories", "Failed to delete category", err)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Category deleted successfully",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/categories")
}

// HandleAdminTags returns all tags with counts for the management listing
func (atc *AdminTaxonomyController) HandleAdminTags(c *fiber.Ctx) error {
	counts, err := atc.tagRepo.ListWithCounts()
	if err != nil {
		return atc.handleError(c, "/admin", "Failed to load tags", err)
	}

	tags := make([]fiber.Map, len(counts))
	for i, entry := range counts {
		tags[i] = fiber.Map{
			"tag":        entry.Tag,
			"post_count": entry.PostCount,
		}
	}
	return c.JSON(fiber.Map{"tags": tags, "flash": flash.Get(c)})
}

// HandleAdminTagStore handles tag creation
func (atc *AdminTaxonomyController) HandleAdminTagStore(c *fiber.Ctx) error {
	name := c.FormValue("name")
	if name == "" {
		fm := fiber.Map{
			"type":    "error",
			"message": "Name is required",
		}
		return flash.WithError(c, fm).Redirect("/admin/tags")
	}

	tagSlug := c.FormValue("slug")
	if tagSlug == "" {
		tagSlug = slugify.Slugify(name)
	}
	slugExists, err := atc.tagRepo.SlugExists(tagSlug)
	if err != nil {
		return atc.handleError(c, "/admin/tags", "Failed to check slug", err)
	}
	if slugExists {
		tagSlug = slugify.WithTimestamp(tagSlug, time.Now())
	}

	tag := &models.Tag{
		Name: name,
		Slug: tagSlug,
	}
	if err := atc.tagRepo.Create(tag); err != nil {
		return atc.handleError(c, "/admin/tags", "Failed to create tag", err)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Tag created successfully",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/tags")
}

// HandleAdminTagUpdate handles tag updates
func (atc *AdminTaxonomyController) HandleAdminTagUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Redirect("/admin/tags")
	}

	fields := map[string]interface{}{}
	if name := c.FormValue("name"); name != "" {
		fields["name"] = name
	}
	if tagSlug := c.FormValue("slug"); tagSlug != "" {
		slugExists, err := atc.tagRepo.SlugExistsExceptID(tagSlug, id)
		if err != nil {
			return atc.handleError(c, "/admin/tags", "Failed to check slug", err)
		}
		if slugExists {
			tagSlug = slugify.WithTimestamp(tagSlug, time.Now())
		}
		fields["slug"] = tagSlug
	}

	tag, err := atc.tagRepo.Update(id, fields)
	if err != nil {
		return atc.handleError(c, "/admin/tags", "Failed to update tag", err)
	}
	if tag == nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Tag not found",
		}
		return flash.WithError(c, fm).Redirect("/admin/tags")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Tag updated successfully",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/tags")
}

// HandleAdminTagDelete deletes a tag and its junction rows
func (atc *AdminTaxonomyController) HandleAdminTagDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Redirect("/admin/tags")
	}

	tag, err := atc.tagRepo.GetByID(id)
	if err != nil {
		return atc.handleError(c, "/admin/tags", "Failed to load tag", err)
	}
	if tag == nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Tag not found",
		}
		return flash.WithError(c, fm).Redirect("/admin/tags")
	}

	if err := atc.tagRepo.Delete(id); err != nil {
		return atc.handleError(c, "/admin/tags", "Failed to delete tag", err)
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Tag deleted successfully",
	}
	return flash.WithSuccess(c, fm).Redirect("/admin/tags")
}

// ============================================================================
// GLOBAL ADMIN TAXONOMY CONTROLLER INSTANCE - Singleton Pattern
// ============================================================================

var adminTaxonomyController *AdminTaxonomyController

// InitializeAdminTaxonomyController initializes the global admin taxonomy controller
func InitializeAdminTaxonomyController() {
	factory := repository.GetGlobalFactory()
	adminTaxonomyController = NewAdminTaxonomyController(
		factory.GetCategoryRepository(),
		factory.GetTagRepository(),
	)
}

// GetAdminTaxonomyController returns the global admin taxonomy controller instance
func GetAdminTaxonomyController() *AdminTaxonomyController {
	if adminTaxonomyController == nil {
		InitializeAdminTaxonomyController()
	}
	return adminTaxonomyController
}
