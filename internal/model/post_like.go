package model

import (
	"time"
)

// PostLike 点赞关系，(user, post) 唯一，一个用户对同一帖子最多存在一条
type PostLike struct {
	UserID    uint64    `gorm:"primaryKey" json:"user_id"`
	PostID    uint64    `gorm:"primaryKey;index:idx_like_post_id" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostLike) TableName() string {
	return "post_likes"
}
