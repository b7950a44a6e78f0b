package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/repository"
	"context"
	"fmt"
	"time"
)

const anonViewMarkerTTL = time.Hour * 24

type PostActionService interface {
	ToggleLike(ctx context.Context, slug string, userID uint64) (*dto.LikeResultDTO, error)
	TrackView(ctx context.Context, slug string, userID uint64, anonID string) (*dto.ViewResultDTO, error)
	GetAnalytics(ctx context.Context, slug string, viewerID uint64) (*dto.PostAnalyticsDTO, error)
}

type PostActionServiceImpl struct {
	postRepo       repository.PostRepo
	commentRepo    repository.CommentRepo
	postActionRepo repository.PostActionRepo
}

func NewPostActionService(
	postRepo repository.PostRepo,
	commentRepo repository.CommentRepo,
	postActionRepo repository.PostActionRepo,
) PostActionService {
	return &PostActionServiceImpl{
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		postActionRepo: postActionRepo,
	}
}

// ToggleLike 点赞切换，统计行始终以点赞表的真实计数回填
func (s *PostActionServiceImpl) ToggleLike(ctx context.Context, slug string, userID uint64) (*dto.LikeResultDTO, error) {
	post, err := s.visiblePost(ctx, slug, userID)
	if err != nil {
		return nil, err
	}

	liked, err := s.postActionRepo.CheckLikeExists(ctx, userID, post.ID)
	if err != nil {
		return nil, err
	}

	if liked {
		err = s.postActionRepo.DeleteLike(ctx, userID, post.ID)
	} else {
		err = s.postActionRepo.CreateLike(ctx, userID, post.ID)
	}
	if err != nil {
		return nil, err
	}

	count, err := s.postActionRepo.GetLikeCountByPostID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if err = s.postActionRepo.UpsertAnalyticsLikes(ctx, post.ID, count); err != nil {
		return nil, err
	}

	return &dto.LikeResultDTO{IsLiked: !liked, LikesCount: count}, nil
}

// TrackView 浏览计数，同一访客对同一文章只计一次。
// 登录用户以浏览记录表去重，匿名访客以会话标识在缓存中去重。
func (s *PostActionServiceImpl) TrackView(ctx context.Context, slug string, userID uint64, anonID string) (*dto.ViewResultDTO, error) {
	post, err := s.visiblePost(ctx, slug, userID)
	if err != nil {
		return nil, err
	}

	var firstView bool
	if userID != 0 {
		firstView, err = s.postActionRepo.CreateViewer(ctx, post.ID, userID)
		if err != nil {
			return nil, err
		}
	} else if anonID != "" {
		key := fmt.Sprintf("%s%s:%d", consts.PostAnonViewKey, anonID, post.ID)
		firstView, err = redis.SetNX(ctx, key, 1, anonViewMarkerTTL)
		if err != nil {
			return nil, err
		}
	}

	if firstView {
		if err = s.postActionRepo.IncrementAnalyticsViews(ctx, post.ID); err != nil {
			return nil, err
		}
	}

	analytics, err := s.postActionRepo.GetAnalytics(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	result := &dto.ViewResultDTO{}
	if analytics != nil {
		result.Views = analytics.Views
	}
	return result, nil
}

// GetAnalytics 文章统计数据，随文章可见性公开
func (s *PostActionServiceImpl) GetAnalytics(ctx context.Context, slug string, viewerID uint64) (*dto.PostAnalyticsDTO, error) {
	post, err := s.visiblePost(ctx, slug, viewerID)
	if err != nil {
		return nil, err
	}

	result := &dto.PostAnalyticsDTO{PostID: post.ID}
	analytics, err := s.postActionRepo.GetAnalytics(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if analytics != nil {
		result.Views = analytics.Views
		result.Likes = analytics.Likes
	}

	result.Comments, err = s.commentRepo.CountCommentsByPostID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// visiblePost 按浏览者视角取文章，未发布的文章只有作者可见
func (s *PostActionServiceImpl) visiblePost(ctx context.Context, slug string, viewerID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if !post.IsPublished && post.AuthorID != viewerID {
		return nil, ErrPostNotFound
	}
	return post, nil
}
