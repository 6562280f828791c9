package repository

import (
	"errors"

	"github.com/quillblog/quill/app/models"
	"gorm.io/gorm"
)

// categoryRepository implements the CategoryRepository interface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create creates a new category in the database
func (r *categoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// GetByID retrieves a category by its ID
func (r *categoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// GetBySlug retrieves a category by its slug
func (r *categoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("slug = ?", slug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// List retrieves all categories ordered alphabetically by name
func (r *categoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// ListWithCounts retrieves all categories with their published-post counts,
// ordered alphabetically regardless of count. Drafts and archived posts are
// excluded from the count by the join condition.
func (r *categoryRepository) ListWithCounts() ([]CategoryWithCount, error) {
	var rows []struct {
		ID          uint
		Name        string
		Slug        string
		Description *string
		PostCount   int64
	}

	err := r.db.Model(&models.Category{}).
		Select("categories.id, categories.name, categories.slug, categories.description, COUNT(posts.id) AS post_count").
		Joins("LEFT JOIN post_categories ON post_categories.category_id = categories.id").
		Joins("LEFT JOIN posts ON posts.id = post_categories.post_id AND posts.status = ? AND posts.deleted_at IS NULL", models.POST_STATUS_PUBLISHED).
		Group("categories.id, categories.name, categories.slug, categories.description").
		Order("categories.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make([]CategoryWithCount, len(rows))
	for i, row := range rows {
		counts[i] = CategoryWithCount{
			Category: models.Category{
				ID:          row.ID,
				Name:        row.Name,
				Slug:        row.Slug,
				Description: row.Description,
			},
			PostCount: row.PostCount,
		}
	}
	return counts, nil
}

// Update applies partial field updates to a category and returns the
// persisted record. A missing id yields (nil, nil).
func (r *categoryRepository) Update(id uint, fields map[string]interface{}) (*models.Category, error) {
	res := r.db.Model(&models.Category{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(id)
}

// Delete soft deletes a category and removes its junction rows in a single
// transaction
func (r *categoryRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.PostCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Category{}, id).Error; err != nil {
			return err
		}
		return nil
	})
}

// Count returns the total number of categories
func (r *categoryRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Count(&count).Error
	return count, err
}

// SlugExists checks if a slug already exists
func (r *categoryRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// SlugExistsExceptID checks if a slug exists excluding a specific ID
func (r *categoryRepository) SlugExistsExceptID(slug string, id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Where("slug = ? AND id != ?", slug, id).Count(&count).Error
	return count > 0, err
}
