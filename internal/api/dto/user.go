package dto

// RegisterDTO 注册
type RegisterDTO struct {
	Username    string  `json:"username" binding:"required" validate:"min=3,max=20"`
	Email       string  `json:"email" binding:"required" validate:"email"`
	Password    string  `json:"password" binding:"required" validate:"min=6,max=64"`
	DateOfBirth *string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Bio         *string `json:"bio,omitempty" validate:"omitempty,max=250"`
}

// CredentialDTO 登录凭证
type CredentialDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenDTO 令牌对
type TokenDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshDTO 刷新令牌请求
type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserProfileDTO 用户资料
type UserProfileDTO struct {
	UserID      uint64  `json:"user_id"`
	Username    string  `json:"username"`
	Email       string  `json:"email,omitempty"`
	Role        string  `json:"role"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	AvatarURL   string  `json:"avatar_url"`
	Bio         *string `json:"bio,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// UpdateProfileDTO 修改资料，字段为空表示不变
type UpdateProfileDTO struct {
	Username    *string `json:"username,omitempty" validate:"omitempty,min=3,max=20"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	DateOfBirth *string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Bio         *string `json:"bio,omitempty" validate:"omitempty,max=250"`
}

// PasswordResetRequestDTO 发起重置密码
type PasswordResetRequestDTO struct {
	Email string `json:"email" binding:"required" validate:"email"`
}

// PasswordResetDTO 执行重置密码
type PasswordResetDTO struct {
	NewPassword     string `json:"new_password" binding:"required" validate:"min=6,max=64"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// PasswordResetTicketDTO 重置密码凭据，开发环境下直接返回
type PasswordResetTicketDTO struct {
	UserID uint64 `json:"user_id"`
	Token  string `json:"token"`
}

// UserPageDTO 用户分页
type UserPageDTO struct {
	List    []*UserProfileDTO `json:"list"`
	HasMore bool              `json:"has_more"`
}

// AdminStatsDTO 管理面板统计数据
type AdminStatsDTO struct {
	TotalUsers     int64 `json:"total_users"`
	NewUsersToday  int64 `json:"new_users_today"`
	TotalPosts     int64 `json:"total_posts"`
	PublishedPosts int64 `json:"published_posts"`
	TotalComments  int64 `json:"total_comments"`
}

// CountDTO 单计数返回
type CountDTO struct {
	Count int64 `json:"count"`
}
