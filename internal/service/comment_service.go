package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/repository"
	"context"
	"time"
)

type CommentService interface {
	ListComments(ctx context.Context, slug string, onlyAuthorID uint64, viewerID uint64, page, pageSize int) ([]*dto.CommentDTO, error)
	CreateComment(ctx context.Context, slug string, authorID uint64, createDTO *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	UpdateComment(ctx context.Context, id uint64, userID uint64, updateDTO *dto.CommentUpdateDTO) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, id uint64, userID uint64) error
}

type CommentServiceImpl struct {
	postRepo    repository.PostRepo
	commentRepo repository.CommentRepo
}

func NewCommentService(postRepo repository.PostRepo, commentRepo repository.CommentRepo) CommentService {
	return &CommentServiceImpl{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// ListComments 获取文章下的评论，onlyAuthorID 不为 0 时只返回该作者的评论
func (s *CommentServiceImpl) ListComments(ctx context.Context, slug string, onlyAuthorID uint64, viewerID uint64, page, pageSize int) ([]*dto.CommentDTO, error) {
	post, err := s.visiblePost(ctx, slug, viewerID)
	if err != nil {
		return nil, err
	}

	limit, offset := NormalizePage(page, pageSize)

	var comments []*model.Comment
	if onlyAuthorID != 0 {
		comments, err = s.commentRepo.ListCommentsByPostAndAuthor(ctx, post.ID, onlyAuthorID, limit, offset)
	} else {
		comments, err = s.commentRepo.ListCommentsByPostID(ctx, post.ID, limit, offset)
	}
	if err != nil {
		return nil, err
	}

	list := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		list = append(list, toCommentDTO(comment))
	}
	return list, nil
}

func (s *CommentServiceImpl) CreateComment(ctx context.Context, slug string, authorID uint64, createDTO *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	post, err := s.visiblePost(ctx, slug, authorID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:   post.ID,
		AuthorID: authorID,
		Content:  createDTO.Content,
	}
	if err = s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	created, err := s.commentRepo.GetCommentById(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	return toCommentDTO(created), nil
}

// UpdateComment 修改评论，仅作者本人可操作
func (s *CommentServiceImpl) UpdateComment(ctx context.Context, id uint64, userID uint64, updateDTO *dto.CommentUpdateDTO) (*dto.CommentDTO, error) {
	comment, err := s.commentRepo.GetCommentById(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.AuthorID != userID {
		return nil, ErrCommentForbidden
	}

	if err = s.commentRepo.UpdateCommentContent(ctx, id, updateDTO.Content); err != nil {
		return nil, err
	}

	comment.Content = updateDTO.Content
	return toCommentDTO(comment), nil
}

// DeleteComment 删除评论，仅作者本人可操作
func (s *CommentServiceImpl) DeleteComment(ctx context.Context, id uint64, userID uint64) error {
	comment, err := s.commentRepo.GetCommentById(ctx, id)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.AuthorID != userID {
		return ErrCommentForbidden
	}

	return s.commentRepo.DeleteComment(ctx, id)
}

func (s *CommentServiceImpl) visiblePost(ctx context.Context, slug string, viewerID uint64) (*model.Post, error) {
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

func toCommentDTO(comment *model.Comment) *dto.CommentDTO {
	return &dto.CommentDTO{
		ID:             comment.ID,
		PostID:         comment.PostID,
		AuthorID:       comment.AuthorID,
		AuthorUsername: comment.Author.Username,
		Content:        comment.Content,
		CreatedAt:      comment.CreatedAt.Format(time.RFC3339),
	}
}
