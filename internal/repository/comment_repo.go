package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CommentRepo interface {
	GetCommentById(ctx context.Context, id uint64) (*model.Comment, error)
	ListCommentsByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error)
	ListCommentsByPostAndAuthor(ctx context.Context, postID, authorID uint64, limit, offset int) ([]*model.Comment, error)
	CountCommentsByPostID(ctx context.Context, postID uint64) (int64, error)
	CountComments(ctx context.Context) (int64, error)
	CreateComment(ctx context.Context, comment *model.Comment) error
	UpdateCommentContent(ctx context.Context, id uint64, content string) error
	DeleteComment(ctx context.Context, id uint64) error
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

func (s *CommentRepoImpl) GetCommentById(ctx context.Context, id uint64) (*model.Comment, error) {
	comment := &model.Comment{}
	result := s.db.WithContext(ctx).
		Preload("Author").
		First(comment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return comment, nil
}

func (s *CommentRepoImpl) ListCommentsByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	result := s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&comments)
	if result.Error != nil {
		return nil, result.Error
	}
	return comments, nil
}

func (s *CommentRepoImpl) ListCommentsByPostAndAuthor(ctx context.Context, postID, authorID uint64, limit, offset int) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	result := s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ? AND author_id = ?", postID, authorID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&comments)
	if result.Error != nil {
		return nil, result.Error
	}
	return comments, nil
}

func (s *CommentRepoImpl) CountCommentsByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("post_id = ?", postID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (s *CommentRepoImpl) CountComments(ctx context.Context) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Comment{}).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *CommentRepoImpl) UpdateCommentContent(ctx context.Context, id uint64, content string) error {
	return s.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ?", id).
		Update("content", content).Error
}

func (s *CommentRepoImpl) DeleteComment(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Comment{}, id).Error
}
