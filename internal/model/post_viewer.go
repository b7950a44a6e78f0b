package model

import (
	"time"
)

// PostViewer 已计数的浏览者集合，(post, user) 唯一，保证同一登录用户只计一次浏览
type PostViewer struct {
	PostID   uint64    `gorm:"primaryKey" json:"post_id"`
	UserID   uint64    `gorm:"primaryKey;index:idx_viewer_user_id" json:"user_id"`
	ViewedAt time.Time `json:"viewed_at"`
}

func (PostViewer) TableName() string {
	return "post_viewers"
}
