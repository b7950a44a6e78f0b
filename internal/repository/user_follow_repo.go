package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserFollowRepo interface {
	GetUserFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follow, error)
	GetUserFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follow, error)
	GetUserFollowerCount(ctx context.Context, userID uint64) (int64, error)
	GetUserFollowingCount(ctx context.Context, userID uint64) (int64, error)
	GetUserFollow(ctx context.Context, followerID, followedID uint64) (*model.Follow, error)
	CreateUserFollow(ctx context.Context, follow *model.Follow) error
	DeleteUserFollow(ctx context.Context, follow *model.Follow) error
}

type UserFollowRepoImpl struct {
	db *gorm.DB
}

func NewUserFollowRepo(db *gorm.DB) UserFollowRepo {
	return &UserFollowRepoImpl{db: db}
}

// GetUserFollowers 获取用户的粉丝列表
func (s *UserFollowRepoImpl) GetUserFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follow, error) {
	var follows []*model.Follow
	result := s.db.WithContext(ctx).
		Where("followed_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&follows)

	if result.Error != nil {
		return nil, result.Error
	}
	return follows, nil
}

// GetUserFollowing 获取用户的关注列表
func (s *UserFollowRepoImpl) GetUserFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follow, error) {
	var follows []*model.Follow
	result := s.db.WithContext(ctx).
		Where("follower_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&follows)

	if result.Error != nil {
		return nil, result.Error
	}
	return follows, nil
}

// GetUserFollowerCount 获取用户的粉丝数量
func (s *UserFollowRepoImpl) GetUserFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("followed_id = ?", userID).
		Count(&count)

	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// GetUserFollowingCount 获取用户的关注数量
func (s *UserFollowRepoImpl) GetUserFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count)

	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// GetUserFollow 获取用户的关注关系
func (s *UserFollowRepoImpl) GetUserFollow(ctx context.Context, followerID, followedID uint64) (*model.Follow, error) {
	var follow model.Follow
	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		First(&follow)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &follow, nil
}

// CreateUserFollow 创建关注关系，重复关注时静默跳过
func (s *UserFollowRepoImpl) CreateUserFollow(ctx context.Context, follow *model.Follow) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			DoNothing: true,
		}).
		Create(follow).Error
}

// DeleteUserFollow 删除关注关系
func (s *UserFollowRepoImpl) DeleteUserFollow(ctx context.Context, follow *model.Follow) error {
	return s.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", follow.FollowerID, follow.FollowedID).
		Delete(&model.Follow{}).Error
}
