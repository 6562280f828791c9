package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/quillblog/quill/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// postRepository implements the PostRepository interface
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository instance
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create creates a new post in the database
func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetByID retrieves a post by its ID
func (r *postRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").Preload("Categories").Preload("Tags").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetBySlug retrieves a post by its slug regardless of status
func (r *postRepository) GetBySlug(slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").Preload("Categories").Preload("Tags").
		Where("slug = ?", slug).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetPublishedBySlug retrieves a published post by its slug
func (r *postRepository) GetPublishedBySlug(slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").Preload("Categories").Preload("Tags").
		Where("slug = ? AND status = ?", slug, models.POST_STATUS_PUBLISHED).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// List retrieves posts of any status with pagination, newest first
func (r *postRepository) List(page, pageSize int) (*PostPage, error) {
	page, pageSize = NormalizePagination(page, pageSize)

	var total int64
	if err := r.db.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []models.Post
	err := r.db.Preload("Author").Preload("Categories").Preload("Tags").
		Order("created_at DESC").
		Offset(paginationOffset(page, pageSize)).Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:      posts,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
	}, nil
}

// GetPublished retrieves published posts with pagination, ordered by publish
// date descending. Drafts and archived posts are filtered by status, so a
// published_at that is still NULL can never leak into the listing.
func (r *postRepository) GetPublished(page, pageSize int) (*PostPage, error) {
	page, pageSize = NormalizePagination(page, pageSize)

	published := r.db.Model(&models.Post{}).Where("status = ?", models.POST_STATUS_PUBLISHED)

	var total int64
	if err := published.Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []models.Post
	err := r.db.Preload("Author").Preload("Categories").Preload("Tags").
		Where("status = ?", models.POST_STATUS_PUBLISHED).
		Order("published_at DESC").
		Offset(paginationOffset(page, pageSize)).Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:      posts,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
	}, nil
}

// Search performs a case-insensitive substring search across title, content
// and excerpt, restricted to published posts.
func (r *postRepository) Search(query string, page, pageSize int) (*SearchPage, error) {
	page, pageSize = NormalizePagination(page, pageSize)
	pattern := "%" + strings.TrimSpace(query) + "%"

	matcher := func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ?", models.POST_STATUS_PUBLISHED).
			Where("title ILIKE ? OR content ILIKE ? OR excerpt ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := matcher(r.db.Model(&models.Post{})).Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []models.Post
	err := matcher(r.db.Preload("Author").Preload("Categories").Preload("Tags")).
		Order("published_at DESC").
		Offset(paginationOffset(page, pageSize)).Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return &SearchPage{
		PostPage: PostPage{
			Posts:      posts,
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: TotalPages(total, pageSize),
		},
		Query: query,
	}, nil
}

// GetByCategory retrieves published posts assigned to the category with the
// given slug. An unresolved slug returns ErrCategoryNotFound, which is not
// the same as a category with zero published posts.
func (r *postRepository) GetByCategory(categorySlug string, page, pageSize int) (*PostPage, error) {
	var category models.Category
	err := r.db.Where("slug = ?", categorySlug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	page, pageSize = NormalizePagination(page, pageSize)

	matcher := func(tx *gorm.DB) *gorm.DB {
		return tx.Joins("JOIN post_categories ON post_categories.post_id = posts.id").
			Where("post_categories.category_id = ?", category.ID).
			Where("posts.status = ?", models.POST_STATUS_PUBLISHED)
	}

	var total int64
	if err := matcher(r.db.Model(&models.Post{})).Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []models.Post
	err = matcher(r.db.Preload("Author").Preload("Categories").Preload("Tags")).
		Order("posts.published_at DESC").
		Offset(paginationOffset(page, pageSize)).Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:      posts,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
	}, nil
}

// GetByTag retrieves published posts carrying the tag with the given slug.
// An unresolved slug returns ErrTagNotFound.
func (r *postRepository) GetByTag(tagSlug string, page, pageSize int) (*PostPage, error) {
	var tag models.Tag
	err := r.db.Where("slug = ?", tagSlug).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}

	page, pageSize = NormalizePagination(page, pageSize)

	matcher := func(tx *gorm.DB) *gorm.DB {
		return tx.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Where("post_tags.tag_id = ?", tag.ID).
			Where("posts.status = ?", models.POST_STATUS_PUBLISHED)
	}

	var total int64
	if err := matcher(r.db.Model(&models.Post{})).Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []models.Post
	err = matcher(r.db.Preload("Author").Preload("Categories").Preload("Tags")).
		Order("posts.published_at DESC").
		Offset(paginationOffset(page, pageSize)).Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:      posts,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
	}, nil
}

// GetMostViewed retrieves the most viewed published posts
func (r *postRepository) GetMostViewed(limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("Author").
		Where("status = ?", models.POST_STATUS_PUBLISHED).
		Order("view_count DESC, published_at DESC").Limit(limit).
		Find(&posts).Error
	return posts, err
}

// GetRecent retrieves the most recently published posts
func (r *postRepository) GetRecent(limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("Author").
		Where("status = ?", models.POST_STATUS_PUBLISHED).
		Order("published_at DESC").Limit(limit).
		Find(&posts).Error
	return posts, err
}

// IncrementViewCount increments the view count server-side and returns the
// new value. The arithmetic runs in the UPDATE itself so concurrent page
// views cannot lose updates.
func (r *postRepository) IncrementViewCount(id uint) (uint64, error) {
	var post models.Post
	res := r.db.Model(&post).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "view_count"}}}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, nil
	}
	return post.ViewCount, nil
}

// Update applies partial field updates to a post and returns the persisted
// record. A missing id yields (nil, nil), not an error.
func (r *postRepository) Update(id uint, fields map[string]interface{}) (*models.Post, error) {
	res := r.db.Model(&models.Post{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(id)
}

// Delete soft deletes a post and removes its junction rows in a single
// transaction so a partial failure cannot leave orphans behind.
func (r *postRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Post{}, id).Error; err != nil {
			return err
		}
		return nil
	})
}

// SetCategories replaces the post's category assignments
func (r *postRepository) SetCategories(postID uint, categoryIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostCategory{}).Error; err != nil {
			return err
		}
		for _, categoryID := range categoryIDs {
			pc := models.PostCategory{PostID: postID, CategoryID: categoryID}
			if err := tx.Create(&pc).Error; err != nil {
				return fmt.Errorf("failed to assign category %d: %w", categoryID, err)
			}
		}
		return nil
	})
}

// SetTags replaces the post's tag assignments
func (r *postRepository) SetTags(postID uint, tagIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			pt := models.PostTag{PostID: postID, TagID: tagID}
			if err := tx.Create(&pt).Error; err != nil {
				return fmt.Errorf("failed to assign tag %d: %w", tagID, err)
			}
		}
		return nil
	})
}

// Count returns the total number of posts
func (r *postRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}

// CountPublished returns the number of published posts
func (r *postRepository) CountPublished() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).
		Where("status = ?", models.POST_STATUS_PUBLISHED).Count(&count).Error
	return count, err
}

// TotalPublishedViews sums the view counters of published posts
func (r *postRepository) TotalPublishedViews() (int64, error) {
	var total int64
	err := r.db.Model(&models.Post{}).
		Where("status = ?", models.POST_STATUS_PUBLISHED).
		Select("COALESCE(SUM(view_count), 0)").Scan(&total).Error
	return total, err
}

// SlugExists checks if a slug already exists
func (r *postRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// SlugExistsExceptID checks if a slug exists excluding a specific ID
func (r *postRepository) SlugExistsExceptID(slug string, id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("slug = ? AND id != ?", slug, id).Count(&count).Error
	return count > 0, err
}
