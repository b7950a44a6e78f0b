package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type UserFollowsHandler struct {
	userFollowSvc service.UserFollowService
}

func NewUserFollowsHandler(userFollowSvc service.UserFollowService) *UserFollowsHandler {
	return &UserFollowsHandler{userFollowSvc: userFollowSvc}
}

func (s *UserFollowsHandler) ToggleFollow(c *gin.Context) {
	userID := c.GetUint64("user_id")
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}

	result, err := s.userFollowSvc.ToggleFollow(c.Request.Context(), userID, targetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *UserFollowsHandler) CheckFollow(c *gin.Context) {
	userID := c.GetUint64("user_id")
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}

	result, err := s.userFollowSvc.CheckFollow(c.Request.Context(), userID, targetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *UserFollowsHandler) GetFollowers(c *gin.Context) {
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	page, pageSize := parsePageQuery(c)

	followers, err := s.userFollowSvc.GetFollowers(c.Request.Context(), targetID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, followers)
}

func (s *UserFollowsHandler) GetFollowing(c *gin.Context) {
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	page, pageSize := parsePageQuery(c)

	following, err := s.userFollowSvc.GetFollowing(c.Request.Context(), targetID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, following)
}

func (s *UserFollowsHandler) GetFollowerCount(c *gin.Context) {
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}

	count, err := s.userFollowSvc.GetFollowerCount(c.Request.Context(), targetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.CountDTO{Count: count})
}

func (s *UserFollowsHandler) GetFollowingCount(c *gin.Context) {
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}

	count, err := s.userFollowSvc.GetFollowingCount(c.Request.Context(), targetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.CountDTO{Count: count})
}
