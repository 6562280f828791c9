package models

import "time"

type PostCategory struct {
	PostID     uint      `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	CategoryID uint      `gorm:"primaryKey;autoIncrement:false" json:"category_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
