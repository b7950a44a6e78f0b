package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categorySvc service.CategoryService
}

func NewCategoryHandler(categorySvc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categorySvc: categorySvc}
}

func (s *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := s.categorySvc.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, categories)
}

func (s *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	category, err := s.categorySvc.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, category)
}

func (s *CategoryHandler) CreateCategory(c *gin.Context) {
	var baseDTO dto.CategoryBaseDTO
	err := c.ShouldBind(&baseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	category, err := s.categorySvc.CreateCategory(c.Request.Context(), &baseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, category)
}

func (s *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}

	var baseDTO dto.CategoryBaseDTO
	if err = c.ShouldBind(&baseDTO); err != nil {
		response.Error(c, err)
		return
	}
	category, err := s.categorySvc.UpdateCategory(c.Request.Context(), id, &baseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, category)
}

func (s *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	err = s.categorySvc.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
