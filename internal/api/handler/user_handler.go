package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (s *UserHandler) Register(c *gin.Context) {
	var registerDTO dto.RegisterDTO
	err := c.ShouldBind(&registerDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	err = s.userSvc.Register(c.Request.Context(), &registerDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) Login(c *gin.Context) {
	var loginDTO dto.CredentialDTO
	err := c.ShouldBind(&loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	tokens, err := s.userSvc.Login(c.Request.Context(), &loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tokens)
}

func (s *UserHandler) RefreshToken(c *gin.Context) {
	var refreshDTO dto.RefreshDTO
	err := c.ShouldBind(&refreshDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	tokens, err := s.userSvc.RefreshToken(c.Request.Context(), refreshDTO.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tokens)
}

func (s *UserHandler) Logout(c *gin.Context) {
	token := c.GetString("token")
	err := s.userSvc.Logout(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) GetProfile(c *gin.Context) {
	userID := c.GetUint64("user_id")
	profile, err := s.userSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

func (s *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var updateDTO dto.UpdateProfileDTO
	err := c.ShouldBind(&updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	profile, err := s.userSvc.UpdateProfile(c.Request.Context(), userID, &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

func (s *UserHandler) UpdateAvatar(c *gin.Context) {
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

	url, err := s.userSvc.UpdateAvatar(c.Request.Context(), userID, reader)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]string{
		"avatar_url": url,
	})
}

func (s *UserHandler) GetPublicProfile(c *gin.Context) {
	username := c.Param("username")
	profile, err := s.userSvc.GetPublicProfile(c.Request.Context(), username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

func (s *UserHandler) ListUsers(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	users, err := s.userSvc.ListUsers(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

func (s *UserHandler) ListAdmins(c *gin.Context) {
	admins, err := s.userSvc.ListAdmins(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, admins)
}

func (s *UserHandler) GetAdminStats(c *gin.Context) {
	stats, err := s.userSvc.GetAdminStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

func (s *UserHandler) PromoteUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	err = s.userSvc.PromoteUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) GetPostCount(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	count, err := s.userSvc.GetPostCount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.CountDTO{Count: count})
}

func (s *UserHandler) RequestPasswordReset(c *gin.Context) {
	var reqDTO dto.PasswordResetRequestDTO
	err := c.ShouldBind(&reqDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&reqDTO); err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	ticket, err := s.userSvc.RequestPasswordReset(c.Request.Context(), reqDTO.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ticket)
}

func (s *UserHandler) ResetPassword(c *gin.Context) {
	uid, err := parseIDParam(c, "uid")
	if err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	token := c.Param("token")

	var resetDTO dto.PasswordResetDTO
	if err = c.ShouldBind(&resetDTO); err != nil {
		response.Error(c, err)
		return
	}
	err = s.userSvc.ResetPassword(c.Request.Context(), uid, token, &resetDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func parseIDParam(c *gin.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

func parsePageQuery(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return page, pageSize
}
