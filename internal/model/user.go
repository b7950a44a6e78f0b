package model

import (
	"time"
)

const (
	RoleSuperuser = "Superuser"
	RoleAdmin     = "Admin"
	RoleUser      = "User"
	RoleUnknown   = "Unknown"
)

type User struct {
	ID          uint64     `gorm:"primaryKey"`
	Username    string     `gorm:"type:varchar(50);uniqueIndex:idx_username;not null" json:"username"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex:idx_email;not null" json:"email"`
	Password    string     `gorm:"type:varchar(255);not null" json:"-"`
	IsSuperuser bool       `gorm:"type:tinyint(1);not null;default:0" json:"is_superuser"`
	IsAdmin     bool       `gorm:"type:tinyint(1);not null;default:0" json:"is_admin"`
	IsUser      bool       `gorm:"type:tinyint(1);not null;default:1" json:"is_user"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth"`
	AvatarURL   *string    `gorm:"type:varchar(255)" json:"avatar_url"`
	Bio         *string    `gorm:"type:varchar(250)" json:"bio"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Role 根据标志位推导唯一角色，优先级 Superuser > Admin > User
func (u *User) Role() string {
	switch {
	case u.IsSuperuser:
		return RoleSuperuser
	case u.IsAdmin:
		return RoleAdmin
	case u.IsUser:
		return RoleUser
	default:
		return RoleUnknown
	}
}
