package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	ROLE_ADMIN  = "admin"
	ROLE_AUTHOR = "author"
	ROLE_VIEWER = "viewer"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,min=5,max=200"`
	Name      string         `gorm:"type:varchar(150)" json:"name" validate:"max=150"`
	Role      string         `gorm:"type:varchar(50);default:'viewer'" json:"role" validate:"oneof=admin author viewer"`
	AvatarURL string         `gorm:"type:varchar(255);default:null" json:"avatar_url" validate:"max=255"`
	Posts     []Post         `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// IsAdmin reports whether the user carries the admin role
func (u *User) IsAdmin() bool {
	return u.Role == ROLE_ADMIN
}
