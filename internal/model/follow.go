package model

import "time"

// Follow 关注关系，(follower, followed) 唯一，follower 不能等于 followed
type Follow struct {
	FollowerID uint64    `gorm:"primaryKey" json:"follower_id"`
	FollowedID uint64    `gorm:"primaryKey;index:idx_followed_id" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}
