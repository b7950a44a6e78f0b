package model

import (
	"time"
)

type Comment struct {
	ID        uint64    `gorm:"primaryKey"`
	PostID    uint64    `gorm:"not null;index:idx_comment_post_id" json:"post_id"`
	AuthorID  uint64    `gorm:"not null;index:idx_comment_author_id" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	Author User `gorm:"foreignKey:AuthorID;references:ID"`
}

func (Comment) TableName() string {
	return "comments"
}
