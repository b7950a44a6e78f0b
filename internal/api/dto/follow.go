package dto

// FollowResultDTO 关注状态
type FollowResultDTO struct {
	IsFollowing bool `json:"is_following"`
}

// FollowUserDTO 关注列表中的用户
type FollowUserDTO struct {
	UserID    uint64 `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}
