package repository

import (
	"errors"

	"github.com/quillblog/quill/app/models"
	"gorm.io/gorm"
)

// Sentinel errors for taxonomy filters. A slug that resolves to nothing is a
// different condition than a resolved slug with zero published posts, and
// callers decide the fallback policy.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrTagNotFound      = errors.New("tag not found")
)

// PostPage is one page of posts plus the derived pagination totals
type PostPage struct {
	Posts      []models.Post
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// SearchPage is a PostPage that echoes the query it was built from
type SearchPage struct {
	PostPage
	Query string
}

// CategoryWithCount pairs a category with its published-post count
type CategoryWithCount struct {
	Category  models.Category
	PostCount int64
}

// TagWithCount pairs a tag with its published-post count
type TagWithCount struct {
	Tag       models.Tag
	PostCount int64
}

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(page, pageSize int) ([]models.User, error)
	Count() (int64, error)
}

// PostRepository defines the interface for post-related database operations.
// Lookups return (nil, nil) when nothing matches; absence is not an error.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	GetBySlug(slug string) (*models.Post, error)
	GetPublishedBySlug(slug string) (*models.Post, error)
	List(page, pageSize int) (*PostPage, error)
	GetPublished(page, pageSize int) (*PostPage, error)
	Search(query string, page, pageSize int) (*SearchPage, error)
	GetByCategory(categorySlug string, page, pageSize int) (*PostPage, error)
	GetByTag(tagSlug string, page, pageSize int) (*PostPage, error)
	GetMostViewed(limit int) ([]models.Post, error)
	GetRecent(limit int) ([]models.Post, error)
	IncrementViewCount(id uint) (uint64, error)
	Update(id uint, fields map[string]interface{}) (*models.Post, error)
	Delete(id uint) error
	SetCategories(postID uint, categoryIDs []uint) error
	SetTags(postID uint, tagIDs []uint) error
	Count() (int64, error)
	CountPublished() (int64, error)
	TotalPublishedViews() (int64, error)
	SlugExists(slug string) (bool, error)
	SlugExistsExceptID(slug string, id uint) (bool, error)
}

// CategoryRepository defines the interface for category-related operations
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id uint) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	List() ([]models.Category, error)
	ListWithCounts() ([]CategoryWithCount, error)
	Update(id uint, fields map[string]interface{}) (*models.Category, error)
	Delete(id uint) error
	Count() (int64, error)
	SlugExists(slug string) (bool, error)
	SlugExistsExceptID(slug string, id uint) (bool, error)
}

// TagRepository defines the interface for tag-related operations
type TagRepository interface {
	Create(tag *models.Tag) error
	GetByID(id uint) (*models.Tag, error)
	GetBySlug(slug string) (*models.Tag, error)
	List() ([]models.Tag, error)
	ListWithCounts() ([]TagWithCount, error)
	Update(id uint, fields map[string]interface{}) (*models.Tag, error)
	Delete(id uint) error
	Count() (int64, error)
	SlugExists(slug string) (bool, error)
	SlugExistsExceptID(slug string, id uint) (bool, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User     UserRepository
	Post     PostRepository
	Category CategoryRepository
	Tag      TagRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Post:     NewPostRepository(db),
		Category: NewCategoryRepository(db),
		Tag:      NewTagRepository(db),
	}
}
