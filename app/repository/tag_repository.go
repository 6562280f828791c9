package repository

import (
	"errors"

	"github.com/quillblog/quill/app/models"
	"gorm.io/gorm"
)

// tagRepository implements the TagRepository interface
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository instance
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// Create creates a new tag in the database
func (r *tagRepository) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// GetByID retrieves a tag by its ID
func (r *tagRepository) GetByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// GetBySlug retrieves a tag by its slug
func (r *tagRepository) GetBySlug(slug string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("slug = ?", slug).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// List retrieves all tags ordered alphabetically by name
func (r *tagRepository) List() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Order("name ASC").Find(&tags).Error
	return tags, err
}

// ListWithCounts retrieves all tags with their published-post counts, most
// used first with the name as a stable tie-break.
func (r *tagRepository) ListWithCounts() ([]TagWithCount, error) {
	var rows []struct {
		ID        uint
		Name      string
		Slug      string
		PostCount int64
	}

	err := r.db.Model(&models.Tag{}).
		Select("tags.id, tags.name, tags.slug, COUNT(posts.id) AS post_count").
		Joins("LEFT JOIN post_tags ON post_tags.tag_id = tags.id").
		Joins("LEFT JOIN posts ON posts.id = post_tags.post_id AND posts.status = ? AND posts.deleted_at IS NULL", models.POST_STATUS_PUBLISHED).
		Group("tags.id, tags.name, tags.slug").
		Order("post_count DESC, tags.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make([]TagWithCount, len(rows))
	for i, row := range rows {
		counts[i] = TagWithCount{
			Tag: models.Tag{
				ID:   row.ID,
				Name: row.Name,
				Slug: row.Slug,
			},
			PostCount: row.PostCount,
		}
	}
	return counts, nil
}

// Update applies partial field updates to a tag and returns the persisted
// record. A missing id yields (nil, nil).
func (r *tagRepository) Update(id uint, fields map[string]interface{}) (*models.Tag, error) {
	res := r.db.Model(&models.Tag{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(id)
}

// Delete soft deletes a tag and removes its junction rows in a single
// transaction
func (r *tagRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Tag{}, id).Error; err != nil {
			return err
		}
		return nil
	})
}

// Count returns the total number of tags
func (r *tagRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Tag{}).Count(&count).Error
	return count, err
}

// SlugExists checks if a slug already exists
func (r *tagRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Tag{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// SlugExistsExceptID checks if a slug exists excluding a specific ID
func (r *tagRepository) SlugExistsExceptID(slug string, id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Tag{}).Where("slug = ? AND id != ?", slug, id).Count(&count).Error
	return count > 0, err
}
