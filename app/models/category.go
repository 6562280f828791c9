package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(100);uniqueIndex" json:"name" validate:"required,min=2,max=100"`
	Slug        string         `gorm:"type:varchar(100);uniqueIndex" json:"slug" validate:"required,min=2,max=100"`
	Description *string        `gorm:"type:text" json:"description"`
	Posts       []Post         `gorm:"many2many:post_categories;" json:"posts,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// FindOrCreate looks a category up by slug and creates it when missing
func (c *Category) FindOrCreate(db *gorm.DB) error {
	result := db.Where("slug = ?", c.Slug).First(c)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return db.Create(c).Error
		}
		return result.Error
	}
	return nil
}
