package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]*dto.CategoryDTO, error)
	GetCategory(ctx context.Context, id uint64) (*dto.CategoryDTO, error)
	CreateCategory(ctx context.Context, baseDTO *dto.CategoryBaseDTO) (*dto.CategoryDTO, error)
	UpdateCategory(ctx context.Context, id uint64, baseDTO *dto.CategoryBaseDTO) (*dto.CategoryDTO, error)
	DeleteCategory(ctx context.Context, id uint64) error
}

type CategoryServiceImpl struct {
	categoryRepo repository.CategoryRepo
}

func NewCategoryService(categoryRepo repository.CategoryRepo) CategoryService {
	return &CategoryServiceImpl{categoryRepo: categoryRepo}
}

func (s *CategoryServiceImpl) ListCategories(ctx context.Context) ([]*dto.CategoryDTO, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.CategoryDTO, 0, len(categories))
	for _, category := range categories {
		list = append(list, toCategoryDTO(category))
	}
	return list, nil
}

func (s *CategoryServiceImpl) GetCategory(ctx context.Context, id uint64) (*dto.CategoryDTO, error) {
	category, err := s.categoryRepo.GetCategoryById(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return toCategoryDTO(category), nil
}

func (s *CategoryServiceImpl) CreateCategory(ctx context.Context, baseDTO *dto.CategoryBaseDTO) (*dto.CategoryDTO, error) {
	if err := util.ValidateDTO(baseDTO); err != nil {
		return nil, ErrParamInvalid
	}

	existing, err := s.categoryRepo.GetCategoryByName(ctx, baseDTO.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryExist
	}

	category := &model.Category{
		Name: baseDTO.Name,
		Slug: util.Slugify(baseDTO.Name),
	}
	if err = s.categoryRepo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryDTO(category), nil
}

// UpdateCategory 重命名分类，slug 跟随名称重新生成
func (s *CategoryServiceImpl) UpdateCategory(ctx context.Context, id uint64, baseDTO *dto.CategoryBaseDTO) (*dto.CategoryDTO, error) {
	if err := util.ValidateDTO(baseDTO); err != nil {
		return nil, ErrParamInvalid
	}

	category, err := s.categoryRepo.GetCategoryById(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if baseDTO.Name != category.Name {
		existing, err := s.categoryRepo.GetCategoryByName(ctx, baseDTO.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrCategoryExist
		}
	}

	category.Name = baseDTO.Name
	category.Slug = util.Slugify(baseDTO.Name)
	if err = s.categoryRepo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryDTO(category), nil
}

// DeleteCategory 删除分类，其下文章的分类置空而非删除
func (s *CategoryServiceImpl) DeleteCategory(ctx context.Context, id uint64) error {
	category, err := s.categoryRepo.GetCategoryById(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return s.categoryRepo.DeleteCategory(ctx, id)
}

func toCategoryDTO(category *model.Category) *dto.CategoryDTO {
	return &dto.CategoryDTO{
		ID:   category.ID,
		Name: category.Name,
		Slug: category.Slug,
	}
}
