package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/minio"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
	"fmt"
	"io"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	recentPostsLimit   = 5
	slugSourceMaxRunes = 60
)

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// PostQuery 文章列表查询参数
type PostQuery struct {
	Username    string
	AuthorID    uint64
	TitleQuery  string
	Category    string
	IsPublished *bool
	Page        int
	PageSize    int
}

type PostService interface {
	ListPosts(ctx context.Context, query *PostQuery, viewerID uint64) (*dto.PostPageDTO, error)
	ListRecent(ctx context.Context) ([]*dto.PostDTO, error)
	GetPostBySlug(ctx context.Context, slug string, viewerID uint64) (*dto.PostDTO, error)
	CreatePost(ctx context.Context, authorID uint64, baseDTO *dto.PostBaseDTO) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, slug string, userID uint64, patchDTO *dto.PostPatchDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, slug string, userID uint64) error
	UploadPostImage(ctx context.Context, slug string, userID uint64, reader io.ReadSeeker) (string, error)
}

type PostServiceImpl struct {
	postRepo       repository.PostRepo
	categoryRepo   repository.CategoryRepo
	commentRepo    repository.CommentRepo
	postActionRepo repository.PostActionRepo
}

func NewPostService(
	postRepo repository.PostRepo,
	categoryRepo repository.CategoryRepo,
	commentRepo repository.CommentRepo,
	postActionRepo repository.PostActionRepo,
) PostService {
	return &PostServiceImpl{
		postRepo:       postRepo,
		categoryRepo:   categoryRepo,
		commentRepo:    commentRepo,
		postActionRepo: postActionRepo,
	}
}

func (s *PostServiceImpl) ListPosts(ctx context.Context, query *PostQuery, viewerID uint64) (*dto.PostPageDTO, error) {
	filter := &repository.PostFilter{
		Username:    query.Username,
		AuthorID:    query.AuthorID,
		TitleQuery:  query.TitleQuery,
		IsPublished: query.IsPublished,
		ViewerID:    viewerID,
	}

	// 列表过滤按分类 slug 匹配
	if query.Category != "" {
		category, err := s.categoryRepo.GetCategoryBySlug(ctx, query.Category)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		filter.CategoryID = category.ID
	}

	limit, offset := NormalizePage(query.Page, query.PageSize)

	posts, err := s.postRepo.ListPosts(ctx, filter, limit+1, offset)
	if err != nil {
		return nil, err
	}

	hasMore := len(posts) > limit
	if hasMore {
		posts = posts[:limit]
	}

	list := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		postDTO, err := s.toPostDTO(ctx, post)
		if err != nil {
			return nil, err
		}
		list = append(list, postDTO)
	}
	return &dto.PostPageDTO{List: list, HasMore: hasMore}, nil
}

func (s *PostServiceImpl) ListRecent(ctx context.Context) ([]*dto.PostDTO, error) {
	posts, err := s.postRepo.ListRecentPublished(ctx, recentPostsLimit)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		postDTO, err := s.toPostDTO(ctx, post)
		if err != nil {
			return nil, err
		}
		list = append(list, postDTO)
	}
	return list, nil
}

// GetPostBySlug 获取文章详情，未发布的文章只有作者可见
func (s *PostServiceImpl) GetPostBySlug(ctx context.Context, slug string, viewerID uint64) (*dto.PostDTO, error) {
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
	return s.toPostDTO(ctx, post)
}

func (s *PostServiceImpl) CreatePost(ctx context.Context, authorID uint64, baseDTO *dto.PostBaseDTO) (*dto.PostDTO, error) {
	if err := util.ValidateDTO(baseDTO); err != nil {
		return nil, ErrParamInvalid
	}
	// 标题和正文至少填一项
	if baseDTO.Title == "" && baseDTO.Content == "" {
		return nil, ErrParamInvalid
	}

	post := &model.Post{
		Title:       baseDTO.Title,
		Content:     baseDTO.Content,
		AuthorID:    authorID,
		IsPublished: baseDTO.IsPublished,
	}

	if baseDTO.Category != nil && *baseDTO.Category != "" {
		category, err := s.resolveCategory(ctx, *baseDTO.Category)
		if err != nil {
			return nil, err
		}
		post.CategoryID = &category.ID
	}

	if baseDTO.Slug != nil && *baseDTO.Slug != "" {
		slug := util.Slugify(*baseDTO.Slug)
		exists, err := s.postRepo.SlugExists(ctx, slug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrSlugAlreadyTaken
		}
		post.Slug = slug
	} else {
		// 没有标题时用正文开头派生
		source := baseDTO.Title
		if source == "" {
			source = truncateRunes(baseDTO.Content, slugSourceMaxRunes)
		}
		slug, err := s.ensureUniqueSlug(ctx, util.Slugify(source))
		if err != nil {
			return nil, err
		}
		post.Slug = slug
	}

	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	return s.GetPostBySlug(ctx, post.Slug, authorID)
}

// UpdatePost 修改文章，仅作者本人可操作，标题变更不影响已有 slug
func (s *PostServiceImpl) UpdatePost(ctx context.Context, slug string, userID uint64, patchDTO *dto.PostPatchDTO) (*dto.PostDTO, error) {
	if err := util.ValidateDTO(patchDTO); err != nil {
		return nil, ErrParamInvalid
	}

	post, err := s.postRepo.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.AuthorID != userID {
		return nil, ErrPostForbidden
	}

	fields := make(map[string]interface{})
	if patchDTO.Title != nil {
		fields["title"] = *patchDTO.Title
	}
	if patchDTO.Content != nil {
		fields["content"] = *patchDTO.Content
	}
	if patchDTO.IsPublished != nil {
		fields["is_published"] = *patchDTO.IsPublished
	}
	if patchDTO.Category != nil {
		if *patchDTO.Category == "" {
			fields["category_id"] = nil
		} else {
			category, err := s.resolveCategory(ctx, *patchDTO.Category)
			if err != nil {
				return nil, err
			}
			fields["category_id"] = category.ID
		}
	}

	if err = s.postRepo.UpdatePost(ctx, post.ID, fields); err != nil {
		return nil, err
	}

	return s.GetPostBySlug(ctx, slug, userID)
}

// DeletePost 删除文章，仅作者本人可操作，关联图片事后异步清理
func (s *PostServiceImpl) DeletePost(ctx context.Context, slug string, userID uint64) error {
	post, err := s.postRepo.GetPostBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.AuthorID != userID {
		return ErrPostForbidden
	}

	if err = s.postRepo.DeletePost(ctx, post.ID); err != nil {
		return err
	}

	if post.Image != nil && *post.Image != "" {
		go func(object string) {
			if err := minio.DeleteFile(context.Background(), object); err != nil {
				log.Warn("清理文章配图失败", "object", object, "err", err)
			}
		}(*post.Image)
	}

	return nil
}

// UploadPostImage 上传文章配图，统一转码为 JPEG，仅作者本人可操作
func (s *PostServiceImpl) UploadPostImage(ctx context.Context, slug string, userID uint64, reader io.ReadSeeker) (string, error) {
	post, err := s.postRepo.GetPostBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	if post == nil {
		return "", ErrPostNotFound
	}
	if post.AuthorID != userID {
		return "", ErrPostForbidden
	}

	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		return "", ErrFileNotSupported
	}

	normalized, err := util.NormalizeImage(reader)
	if err != nil {
		return "", ErrFileNotSupported
	}

	objectName := fmt.Sprintf("posts/%s.jpg", uuid.NewString())
	if _, err = minio.UploadFile(ctx, objectName, normalized, int64(normalized.Len()), "image/jpeg"); err != nil {
		return "", err
	}

	oldImage := post.Image
	if err = s.postRepo.UpdatePost(ctx, post.ID, map[string]interface{}{"image": objectName}); err != nil {
		return "", err
	}

	if oldImage != nil && *oldImage != "" {
		go func(object string) {
			if err := minio.DeleteFile(context.Background(), object); err != nil {
				log.Warn("清理旧配图失败", "object", object, "err", err)
			}
		}(*oldImage)
	}

	return minio.GetPublicURL(objectName), nil
}

// resolveCategory 按数字 ID 或名称解析分类
func (s *PostServiceImpl) resolveCategory(ctx context.Context, ref string) (*model.Category, error) {
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		category, err := s.categoryRepo.GetCategoryById(ctx, id)
		if err != nil {
			return nil, err
		}
		if category != nil {
			return category, nil
		}
	}

	category, err := s.categoryRepo.GetCategoryByName(ctx, ref)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// ensureUniqueSlug 基础 slug 被占用时追加递增序号
func (s *PostServiceImpl) ensureUniqueSlug(ctx context.Context, base string) (string, error) {
	exists, err := s.postRepo.SlugExists(ctx, base)
	if err != nil {
		return "", err
	}
	if !exists {
		return base, nil
	}

	for n := 2; ; n++ {
		candidate := util.SlugWithSuffix(base, n)
		exists, err = s.postRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}

func (s *PostServiceImpl) toPostDTO(ctx context.Context, post *model.Post) (*dto.PostDTO, error) {
	postDTO := &dto.PostDTO{
		ID:             post.ID,
		Title:          post.Title,
		Slug:           post.Slug,
		Content:        post.Content,
		IsPublished:    post.IsPublished,
		CreatedAt:      post.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      post.UpdatedAt.Format(time.RFC3339),
		AuthorID:       post.AuthorID,
		AuthorUsername: post.Author.Username,
	}

	if post.Image != nil {
		postDTO.ImageURL = minio.GetPublicURL(*post.Image)
	}
	if post.Category != nil {
		postDTO.Category = &dto.CategoryDTO{
			ID:   post.Category.ID,
			Name: post.Category.Name,
			Slug: post.Category.Slug,
		}
	}

	analytics, err := s.postActionRepo.GetAnalytics(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if analytics != nil {
		postDTO.Views = analytics.Views
		postDTO.Likes = analytics.Likes
	}

	commentCount, err := s.commentRepo.CountCommentsByPostID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	postDTO.CommentsCount = commentCount

	return postDTO, nil
}
