package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/minio"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/repository"
	"context"
	"strconv"
	"time"
)

const followCountCacheTTL = time.Minute

type UserFollowService interface {
	ToggleFollow(ctx context.Context, followerID, followedID uint64) (*dto.FollowResultDTO, error)
	CheckFollow(ctx context.Context, followerID, followedID uint64) (*dto.FollowResultDTO, error)
	GetFollowers(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.FollowUserDTO, error)
	GetFollowing(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.FollowUserDTO, error)
	GetFollowerCount(ctx context.Context, userID uint64) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint64) (int64, error)
}

type UserFollowServiceImpl struct {
	userRepo       repository.UserRepo
	userFollowRepo repository.UserFollowRepo
}

func NewUserFollowService(userRepo repository.UserRepo, userFollowRepo repository.UserFollowRepo) UserFollowService {
	return &UserFollowServiceImpl{
		userRepo:       userRepo,
		userFollowRepo: userFollowRepo,
	}
}

// ToggleFollow 关注切换，不允许关注自己
func (s *UserFollowServiceImpl) ToggleFollow(ctx context.Context, followerID, followedID uint64) (*dto.FollowResultDTO, error) {
	if followerID == followedID {
		return nil, ErrUserFollowSelf
	}

	target, err := s.userRepo.GetUserById(ctx, followedID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	follow := &model.Follow{
		FollowerID: followerID,
		FollowedID: followedID,
		CreatedAt:  time.Now(),
	}

	existing, err := s.userFollowRepo.GetUserFollow(ctx, followerID, followedID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if err = s.userFollowRepo.DeleteUserFollow(ctx, follow); err != nil {
			return nil, err
		}
		return &dto.FollowResultDTO{IsFollowing: false}, nil
	}

	if err = s.userFollowRepo.CreateUserFollow(ctx, follow); err != nil {
		return nil, err
	}
	return &dto.FollowResultDTO{IsFollowing: true}, nil
}

func (s *UserFollowServiceImpl) CheckFollow(ctx context.Context, followerID, followedID uint64) (*dto.FollowResultDTO, error) {
	target, err := s.userRepo.GetUserById(ctx, followedID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.userFollowRepo.GetUserFollow(ctx, followerID, followedID)
	if err != nil {
		return nil, err
	}
	return &dto.FollowResultDTO{IsFollowing: existing != nil}, nil
}

func (s *UserFollowServiceImpl) GetFollowers(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.FollowUserDTO, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	limit, offset := NormalizePage(page, pageSize)
	follows, err := s.userFollowRepo.GetUserFollowers(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.FollowUserDTO, 0, len(follows))
	for _, follow := range follows {
		item, err := s.toFollowUserDTO(ctx, follow.FollowerID)
		if err != nil {
			return nil, err
		}
		if item != nil {
			list = append(list, item)
		}
	}
	return list, nil
}

func (s *UserFollowServiceImpl) GetFollowing(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.FollowUserDTO, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	limit, offset := NormalizePage(page, pageSize)
	follows, err := s.userFollowRepo.GetUserFollowing(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.FollowUserDTO, 0, len(follows))
	for _, follow := range follows {
		item, err := s.toFollowUserDTO(ctx, follow.FollowedID)
		if err != nil {
			return nil, err
		}
		if item != nil {
			list = append(list, item)
		}
	}
	return list, nil
}

func (s *UserFollowServiceImpl) GetFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return 0, err
	}

	key := consts.UserFollowerCountKey + strconv.FormatUint(userID, 10)
	if count, err := redis.GetInt64(ctx, key); err == nil {
		return count, nil
	}

	count, err := s.userFollowRepo.GetUserFollowerCount(ctx, userID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, count, followCountCacheTTL)
	return count, nil
}

func (s *UserFollowServiceImpl) GetFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return 0, err
	}

	key := consts.UserFollowingCountKey + strconv.FormatUint(userID, 10)
	if count, err := redis.GetInt64(ctx, key); err == nil {
		return count, nil
	}

	count, err := s.userFollowRepo.GetUserFollowingCount(ctx, userID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, count, followCountCacheTTL)
	return count, nil
}

func (s *UserFollowServiceImpl) requireUser(ctx context.Context, userID uint64) error {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserFollowServiceImpl) toFollowUserDTO(ctx context.Context, userID uint64) (*dto.FollowUserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	item := &dto.FollowUserDTO{
		UserID:   user.ID,
		Username: user.Username,
	}
	if user.AvatarURL != nil {
		item.AvatarURL = minio.GetPublicURL(*user.AvatarURL)
	}
	return item, nil
}
