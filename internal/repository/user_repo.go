package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type UserRepo interface {
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListRegularUsers(ctx context.Context, limit, offset int) ([]*model.User, error)
	ListAdmins(ctx context.Context) ([]*model.User, error)
	CountUsers(ctx context.Context) (int64, error)
	CountUsersCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUserProfile(ctx context.Context, id uint64, fields map[string]interface{}) error
	PromoteToAdmin(ctx context.Context, id uint64) (int64, error)
	UpdatePassword(ctx context.Context, id uint64, hashed string) error
	UpdateAvatar(ctx context.Context, id uint64, objectName string) error
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).First(user, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return user, nil
}

func (s *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).
		Where("username = ?", username).
		First(user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return user, nil
}

func (s *UserRepoImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).
		Where("email = ?", email).
		First(user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return user, nil
}

// ListRegularUsers 获取普通用户列表，不包含管理员和超级管理员
func (s *UserRepoImpl) ListRegularUsers(ctx context.Context, limit, offset int) ([]*model.User, error) {
	users := make([]*model.User, 0)
	result := s.db.WithContext(ctx).
		Where("is_user = ? AND is_superuser = ?", true, false).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

// ListAdmins 获取全部管理员，不包含超级管理员
func (s *UserRepoImpl) ListAdmins(ctx context.Context) ([]*model.User, error) {
	users := make([]*model.User, 0)
	result := s.db.WithContext(ctx).
		Where("is_admin = ? AND is_superuser = ?", true, false).
		Order("created_at desc").
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (s *UserRepoImpl) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.User{}).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (s *UserRepoImpl) CountUsersCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("created_at >= ?", since).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

// UpdateUserProfile 按字段白名单更新用户资料
func (s *UserRepoImpl) UpdateUserProfile(ctx context.Context, id uint64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// PromoteToAdmin 将普通用户提升为管理员，返回受影响行数
func (s *UserRepoImpl) PromoteToAdmin(ctx context.Context, id uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND is_superuser = ?", id, false).
		Updates(map[string]interface{}{
			"is_admin": true,
			"is_user":  false,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (s *UserRepoImpl) UpdatePassword(ctx context.Context, id uint64, hashed string) error {
	return s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("password", hashed).Error
}

func (s *UserRepoImpl) UpdateAvatar(ctx context.Context, id uint64, objectName string) error {
	return s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("avatar_url", objectName).Error
}
