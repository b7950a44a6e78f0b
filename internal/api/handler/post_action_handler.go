package handler

import (
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	postActionSvc service.PostActionService
}

func NewPostActionHandler(postActionSvc service.PostActionService) *PostActionHandler {
	return &PostActionHandler{postActionSvc: postActionSvc}
}

func (s *PostActionHandler) ToggleLike(c *gin.Context) {
	userID := c.GetUint64("user_id")
	result, err := s.postActionSvc.ToggleLike(c.Request.Context(), c.Param("slug"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *PostActionHandler) IncrementViews(c *gin.Context) {
	userID := c.GetUint64("user_id")
	anonID := c.GetString(consts.ViewerCookie)

	result, err := s.postActionSvc.TrackView(c.Request.Context(), c.Param("slug"), userID, anonID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *PostActionHandler) GetAnalytics(c *gin.Context) {
	viewerID := c.GetUint64("user_id")

	result, err := s.postActionSvc.GetAnalytics(c.Request.Context(), c.Param("slug"), viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
