package model

import (
	"time"
)

type Post struct {
	ID          uint64    `gorm:"primaryKey"`
	Title       string    `gorm:"type:varchar(255)" json:"title"`
	Slug        string    `gorm:"type:varchar(255);uniqueIndex:idx_post_slug;not null" json:"slug"`
	AuthorID    uint64    `gorm:"not null;index:idx_author_id" json:"author_id"`
	CategoryID  *uint64   `gorm:"index:idx_category_id" json:"category_id"` // 分类删除后置空
	Content     string    `gorm:"type:text" json:"content"`
	IsPublished bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_published"`
	Image       *string   `gorm:"type:varchar(255)" json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// 关联关系
	Author   User      `gorm:"foreignKey:AuthorID;references:ID"`
	Category *Category `gorm:"foreignKey:CategoryID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}
