package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// PostFilter 文章列表的筛选条件
type PostFilter struct {
	Username   string
	AuthorID   uint64
	TitleQuery string
	CategoryID uint64
	// IsPublished 为 nil 表示不过滤发布状态
	IsPublished *bool
	// ViewerID 为 0 表示匿名访问，只能看到已发布的文章
	ViewerID uint64
}

type PostRepo interface {
	GetPostById(ctx context.Context, id uint64) (*model.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*model.Post, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListPosts(ctx context.Context, filter *PostFilter, limit, offset int) ([]*model.Post, error)
	ListRecentPublished(ctx context.Context, limit int) ([]*model.Post, error)
	CountPosts(ctx context.Context) (int64, error)
	CountPublishedPosts(ctx context.Context) (int64, error)
	CountPostsByAuthor(ctx context.Context, authorID uint64) (int64, error)
	CreatePost(ctx context.Context, post *model.Post) error
	UpdatePost(ctx context.Context, id uint64, fields map[string]interface{}) error
	DeletePost(ctx context.Context, id uint64) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s *PostRepoImpl) GetPostById(ctx context.Context, id uint64) (*model.Post, error) {
	post := &model.Post{}
	result := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		First(post, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return post, nil
}

func (s *PostRepoImpl) GetPostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	post := &model.Post{}
	result := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Where("slug = ?", slug).
		First(post)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return post, nil
}

func (s *PostRepoImpl) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("slug = ?", slug).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// ListPosts 带筛选条件的文章列表，未发布的文章只有作者本人可见
func (s *PostRepoImpl) ListPosts(ctx context.Context, filter *PostFilter, limit, offset int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)

	query := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Preload("Author").
		Preload("Category")

	if filter.Username != "" {
		query = query.Joins("JOIN users ON users.id = posts.author_id").
			Where("users.username = ?", filter.Username)
	}
	if filter.AuthorID != 0 {
		query = query.Where("posts.author_id = ?", filter.AuthorID)
	}
	if filter.TitleQuery != "" {
		query = query.Where("posts.title LIKE ?", "%"+filter.TitleQuery+"%")
	}
	if filter.CategoryID != 0 {
		query = query.Where("posts.category_id = ?", filter.CategoryID)
	}
	if filter.IsPublished != nil {
		query = query.Where("posts.is_published = ?", *filter.IsPublished)
	}

	if filter.ViewerID == 0 {
		query = query.Where("posts.is_published = ?", true)
	} else {
		query = query.Where("posts.is_published = ? OR posts.author_id = ?", true, filter.ViewerID)
	}

	result := query.
		Order("posts.created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

func (s *PostRepoImpl) ListRecentPublished(ctx context.Context, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	result := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Where("is_published = ?", true).
		Order("created_at desc").
		Limit(limit).
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

func (s *PostRepoImpl) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (s *PostRepoImpl) CountPublishedPosts(ctx context.Context) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("is_published = ?", true).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (s *PostRepoImpl) CountPostsByAuthor(ctx context.Context, authorID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("author_id = ?", authorID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *PostRepoImpl) UpdatePost(ctx context.Context, id uint64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// DeletePost 删除文章，同一事务内清理评论、点赞、浏览记录与统计数据
func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.PostViewer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.PostAnalytics{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, id).Error
	})
}
