package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostActionRepo interface {
	CheckLikeExists(ctx context.Context, userID, postID uint64) (bool, error)
	CreateLike(ctx context.Context, userID, postID uint64) error
	DeleteLike(ctx context.Context, userID, postID uint64) error
	GetLikeCountByPostID(ctx context.Context, postID uint64) (int64, error)
	CreateViewer(ctx context.Context, postID, userID uint64) (bool, error)
	GetAnalytics(ctx context.Context, postID uint64) (*model.PostAnalytics, error)
	UpsertAnalyticsLikes(ctx context.Context, postID uint64, likes int64) error
	IncrementAnalyticsViews(ctx context.Context, postID uint64) error
}

type PostActionRepoImpl struct {
	db *gorm.DB
}

func NewPostActionRepo(db *gorm.DB) PostActionRepo {
	return &PostActionRepoImpl{db: db}
}

func (s *PostActionRepoImpl) CheckLikeExists(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (s *PostActionRepoImpl) CreateLike(ctx context.Context, userID, postID uint64) error {
	like := &model.PostLike{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			DoNothing: true,
		}).
		Create(like).Error
}

func (s *PostActionRepoImpl) DeleteLike(ctx context.Context, userID, postID uint64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.PostLike{}).Error
}

func (s *PostActionRepoImpl) GetLikeCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("post_id = ?", postID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// CreateViewer 记录浏览者，返回是否为首次浏览
func (s *PostActionRepoImpl) CreateViewer(ctx context.Context, postID, userID uint64) (bool, error) {
	viewer := &model.PostViewer{
		PostID:   postID,
		UserID:   userID,
		ViewedAt: time.Now(),
	}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			DoNothing: true,
		}).
		Create(viewer)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *PostActionRepoImpl) GetAnalytics(ctx context.Context, postID uint64) (*model.PostAnalytics, error) {
	analytics := &model.PostAnalytics{}
	result := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		First(analytics)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return analytics, nil
}

// UpsertAnalyticsLikes 以点赞表的真实计数覆盖统计行
func (s *PostActionRepoImpl) UpsertAnalyticsLikes(ctx context.Context, postID uint64, likes int64) error {
	analytics := &model.PostAnalytics{
		PostID: postID,
		Likes:  likes,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"likes": likes}),
		}).
		Create(analytics).Error
}

// IncrementAnalyticsViews 浏览数自增，统计行不存在时初始化为 1
func (s *PostActionRepoImpl) IncrementAnalyticsViews(ctx context.Context, postID uint64) error {
	analytics := &model.PostAnalytics{
		PostID: postID,
		Views:  1,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"views": gorm.Expr("views + 1")}),
		}).
		Create(analytics).Error
}
