package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

func (s *PostHandler) ListPosts(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	page, pageSize := parsePageQuery(c)

	query := &service.PostQuery{
		Username:   c.Query("username"),
		TitleQuery: c.Query("q"),
		Category:   c.Query("category"),
		Page:       page,
		PageSize:   pageSize,
	}
	if author := c.Query("author"); author != "" {
		authorID, err := strconv.ParseUint(author, 10, 64)
		if err != nil {
			response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
			return
		}
		query.AuthorID = authorID
	}
	if published := c.Query("is_published"); published != "" {
		value, err := strconv.ParseBool(published)
		if err != nil {
			response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
			return
		}
		query.IsPublished = &value
	}

	posts, err := s.postSvc.ListPosts(c.Request.Context(), query, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) ListRecent(c *gin.Context) {
	posts, err := s.postSvc.ListRecent(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	post, err := s.postSvc.GetPostBySlug(c.Request.Context(), c.Param("slug"), viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var baseDTO dto.PostBaseDTO
	err := c.ShouldBind(&baseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	post, err := s.postSvc.CreatePost(c.Request.Context(), userID, &baseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var patchDTO dto.PostPatchDTO
	err := c.ShouldBind(&patchDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	post, err := s.postSvc.UpdatePost(c.Request.Context(), c.Param("slug"), userID, &patchDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	err := s.postSvc.DeletePost(c.Request.Context(), c.Param("slug"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) UploadImage(c *gin.Context) {
	userID := c.GetUint64("user_id")

	file, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	reader, err := file.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer func() { _ = reader.Close() }()

	url, err := s.postSvc.UploadPostImage(c.Request.Context(), c.Param("slug"), userID, reader)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]string{
		"image_url": url,
	})
}
