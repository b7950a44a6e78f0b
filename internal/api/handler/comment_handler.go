package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{commentSvc: commentSvc}
}

func (s *CommentHandler) ListComments(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	page, pageSize := parsePageQuery(c)

	// filter=mine 只看自己的评论
	var onlyAuthorID uint64
	if c.Query("filter") == "mine" {
		if viewerID == 0 {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			return
		}
		onlyAuthorID = viewerID
	}

	comments, err := s.commentSvc.ListComments(c.Request.Context(), c.Param("slug"), onlyAuthorID, viewerID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

func (s *CommentHandler) CreateComment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var createDTO dto.CommentCreateDTO
	err := c.ShouldBind(&createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	comment, err := s.commentSvc.CreateComment(c.Request.Context(), c.Param("slug"), userID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

func (s *CommentHandler) UpdateComment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}

	var updateDTO dto.CommentUpdateDTO
	if err = c.ShouldBind(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	comment, err := s.commentSvc.UpdateComment(c.Request.Context(), id, userID, &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

func (s *CommentHandler) DeleteComment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}

	err = s.commentSvc.DeleteComment(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
