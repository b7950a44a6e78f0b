package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CategoryRepo interface {
	ListCategories(ctx context.Context) ([]*model.Category, error)
	GetCategoryById(ctx context.Context, id uint64) (*model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id uint64) error
}

type CategoryRepoImpl struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepo {
	return &CategoryRepoImpl{db: db}
}

func (s *CategoryRepoImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	categories := make([]*model.Category, 0)
	result := s.db.WithContext(ctx).
		Order("name asc").
		Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}

func (s *CategoryRepoImpl) GetCategoryById(ctx context.Context, id uint64) (*model.Category, error) {
	category := &model.Category{}
	result := s.db.WithContext(ctx).First(category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return category, nil
}

func (s *CategoryRepoImpl) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	category := &model.Category{}
	result := s.db.WithContext(ctx).
		Where("name = ?", name).
		First(category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return category, nil
}

func (s *CategoryRepoImpl) GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	category := &model.Category{}
	result := s.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return category, nil
}

func (s *CategoryRepoImpl) CreateCategory(ctx context.Context, category *model.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

func (s *CategoryRepoImpl) UpdateCategory(ctx context.Context, category *model.Category) error {
	return s.db.WithContext(ctx).Save(category).Error
}

// DeleteCategory 删除分类，同一事务内将其下文章的分类置空
func (s *CategoryRepoImpl) DeleteCategory(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Post{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Category{}, id).Error
	})
}
