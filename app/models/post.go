package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	POST_STATUS_DRAFT     = "draft"
	POST_STATUS_PUBLISHED = "published"
	POST_STATUS_ARCHIVED  = "archived"
)

// Post represents a blog article in the system
type Post struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Title          string         `gorm:"type:varchar(255)" json:"title" validate:"required,min=3,max=255"`
	Slug           string         `gorm:"uniqueIndex;type:varchar(255)" json:"slug" validate:"required,min=3,max=255"`
	Content        *string        `gorm:"type:text" json:"content"`
	Excerpt        *string        `gorm:"type:text" json:"excerpt"`
	CoverImage     *string        `gorm:"type:varchar(500)" json:"cover_image" validate:"omitempty,max=500"`
	Status         string         `gorm:"type:varchar(20);default:'draft';index" json:"status" validate:"oneof=draft published archived"`
	AuthorID       *uint          `gorm:"index" json:"author_id"`
	Author         *User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	AIGenerated    bool           `gorm:"default:false" json:"ai_generated"`
	SEOTitle       *string        `gorm:"type:varchar(255)" json:"seo_title"`
	SEODescription *string        `gorm:"type:varchar(500)" json:"seo_description"`
	ViewCount      uint64         `gorm:"default:0" json:"view_count"`
	PublishedAt    *time.Time     `gorm:"index" json:"published_at"`
	Categories     []Category     `gorm:"many2many:post_categories;" json:"categories,omitempty"`
	Tags           []Tag          `gorm:"many2many:post_tags;" json:"tags,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Post model
func (Post) TableName() string {
	return "posts"
}

func (p *Post) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// IsPublished reports whether the post is publicly visible
func (p *Post) IsPublished() bool {
	return p.Status == POST_STATUS_PUBLISHED
}

// Publish marks the post as published. PublishedAt is only set on the first
// transition so republishing an archived post keeps its original date.
func (p *Post) Publish(now time.Time) {
	p.Status = POST_STATUS_PUBLISHED
	if p.PublishedAt == nil {
		p.PublishedAt = &now
	}
}

// Archive marks the post as archived
func (p *Post) Archive() {
	p.Status = POST_STATUS_ARCHIVED
}
