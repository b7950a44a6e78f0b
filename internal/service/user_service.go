package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/minio"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
	"errors"
	"fmt"
	"io"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	gosql "github.com/go-sql-driver/mysql"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
)

const (
	profileCacheTTL    = time.Minute * 5
	postCountCacheTTL  = time.Minute
	passwordResetTTL   = time.Hour
	mysqlDuplicateCode = 1062
)

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO) error
	Login(ctx context.Context, credDTO *dto.CredentialDTO) (*dto.TokenDTO, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenDTO, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, id uint64) (*dto.UserProfileDTO, error)
	GetPublicProfile(ctx context.Context, username string) (*dto.UserProfileDTO, error)
	UpdateProfile(ctx context.Context, id uint64, updateDTO *dto.UpdateProfileDTO) (*dto.UserProfileDTO, error)
	UpdateAvatar(ctx context.Context, id uint64, reader io.ReadSeeker) (string, error)
	ListUsers(ctx context.Context, page, pageSize int) (*dto.UserPageDTO, error)
	ListAdmins(ctx context.Context) ([]*dto.UserProfileDTO, error)
	GetAdminStats(ctx context.Context) (*dto.AdminStatsDTO, error)
	PromoteUser(ctx context.Context, id uint64) error
	GetPostCount(ctx context.Context, userID uint64) (int64, error)
	RequestPasswordReset(ctx context.Context, email string) (*dto.PasswordResetTicketDTO, error)
	ResetPassword(ctx context.Context, uid uint64, token string, resetDTO *dto.PasswordResetDTO) error
}

type UserServiceImpl struct {
	userRepo    repository.UserRepo
	postRepo    repository.PostRepo
	commentRepo repository.CommentRepo
}

func NewUserService(userRepo repository.UserRepo, postRepo repository.PostRepo, commentRepo repository.CommentRepo) UserService {
	return &UserServiceImpl{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) error {
	if err := util.ValidateDTO(regDTO); err != nil {
		return ErrParamInvalid
	}

	findUser, err := s.userRepo.GetUserByUsername(ctx, regDTO.Username)
	if err != nil {
		return err
	}
	if findUser != nil {
		return ErrUserUsernameExist
	}

	findUser, err = s.userRepo.GetUserByEmail(ctx, regDTO.Email)
	if err != nil {
		return err
	}
	if findUser != nil {
		return ErrUserEmailExist
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		Username: regDTO.Username,
		Email:    strings.ToLower(regDTO.Email),
		Password: passwordHash,
		IsUser:   true,
		Bio:      regDTO.Bio,
	}

	if regDTO.DateOfBirth != nil {
		dob, err := parseDate(*regDTO.DateOfBirth)
		if err != nil {
			return ErrParamInvalid
		}
		user.DateOfBirth = dob
	}

	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		if isDuplicateKeyError(err) {
			return ErrUserUsernameExist
		}
		return err
	}

	return nil
}

func (s *UserServiceImpl) Login(ctx context.Context, credDTO *dto.CredentialDTO) (*dto.TokenDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, credDTO.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrPasswordIncorrect
	}

	if err = security.CheckPasswordHash(credDTO.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	return s.issueTokenPair(user)
}

func (s *UserServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenDTO, error) {
	claims, err := security.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if claims.TokenType != security.TokenTypeRefresh {
		return nil, ErrTokenInvalid
	}

	user, err := s.userRepo.GetUserById(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrTokenInvalid
	}

	return s.issueTokenPair(user)
}

// Logout 将 Token 签名加入黑名单，有效期与访问 Token 一致
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrTokenInvalid
	}
	return redis.SetWithExpiration(ctx, signature, true, security.AccessTokenExpiration)
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, id uint64) (*dto.UserProfileDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toProfileDTO(user, true), nil
}

// GetPublicProfile 获取公开资料，短期缓存，不含邮箱
func (s *UserServiceImpl) GetPublicProfile(ctx context.Context, username string) (*dto.UserProfileDTO, error) {
	key := consts.UserProfileKey + username
	value, err := redis.GetValue(ctx, key)
	if err != nil {
		return nil, err
	}
	if value != "" {
		var profile *dto.UserProfileDTO
		if err = json.Unmarshal([]byte(value), &profile); err != nil {
			return nil, err
		}
		return profile, nil
	}

	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	profile := toProfileDTO(user, false)
	if data, err := json.Marshal(profile); err == nil {
		_ = redis.SetWithExpiration(ctx, key, data, profileCacheTTL)
	}
	return profile, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, id uint64, updateDTO *dto.UpdateProfileDTO) (*dto.UserProfileDTO, error) {
	if err := util.ValidateDTO(updateDTO); err != nil {
		return nil, ErrParamInvalid
	}

	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	fields := make(map[string]interface{})

	if updateDTO.Username != nil && *updateDTO.Username != user.Username {
		existing, err := s.userRepo.GetUserByUsername(ctx, *updateDTO.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrUserUsernameExist
		}
		fields["username"] = *updateDTO.Username
	}
	if updateDTO.Email != nil {
		email := strings.ToLower(*updateDTO.Email)
		if email != user.Email {
			existing, err := s.userRepo.GetUserByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, ErrUserEmailExist
			}
			fields["email"] = email
		}
	}
	if updateDTO.DateOfBirth != nil {
		dob, err := parseDate(*updateDTO.DateOfBirth)
		if err != nil {
			return nil, ErrParamInvalid
		}
		fields["date_of_birth"] = dob
	}
	if updateDTO.Bio != nil {
		fields["bio"] = *updateDTO.Bio
	}

	if err = s.userRepo.UpdateUserProfile(ctx, id, fields); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrUserUsernameExist
		}
		return nil, err
	}

	_ = redis.DeleteKey(ctx, consts.UserProfileKey+user.Username)

	return s.GetProfile(ctx, id)
}

// UpdateAvatar 头像统一转码为 JPEG 后落盘，返回公开访问地址
func (s *UserServiceImpl) UpdateAvatar(ctx context.Context, id uint64, reader io.ReadSeeker) (string, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
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

	objectName := fmt.Sprintf("avatars/%s.jpg", uuid.NewString())
	if _, err = minio.UploadFile(ctx, objectName, normalized, int64(normalized.Len()), "image/jpeg"); err != nil {
		return "", err
	}

	oldAvatar := user.AvatarURL
	if err = s.userRepo.UpdateAvatar(ctx, id, objectName); err != nil {
		return "", err
	}

	if oldAvatar != nil && *oldAvatar != "" {
		go func(object string) {
			if err := minio.DeleteFile(context.Background(), object); err != nil {
				log.Warn("清理旧头像失败", "object", object, "err", err)
			}
		}(*oldAvatar)
	}

	_ = redis.DeleteKey(ctx, consts.UserProfileKey+user.Username)

	return minio.GetPublicURL(objectName), nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, page, pageSize int) (*dto.UserPageDTO, error) {
	limit, offset := NormalizePage(page, pageSize)

	users, err := s.userRepo.ListRegularUsers(ctx, limit+1, offset)
	if err != nil {
		return nil, err
	}

	hasMore := len(users) > limit
	if hasMore {
		users = users[:limit]
	}

	list := make([]*dto.UserProfileDTO, 0, len(users))
	for _, user := range users {
		list = append(list, toProfileDTO(user, false))
	}
	return &dto.UserPageDTO{List: list, HasMore: hasMore}, nil
}

// ListAdmins 管理员视图，不含超级管理员
func (s *UserServiceImpl) ListAdmins(ctx context.Context) ([]*dto.UserProfileDTO, error) {
	admins, err := s.userRepo.ListAdmins(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.UserProfileDTO, 0, len(admins))
	for _, admin := range admins {
		list = append(list, toProfileDTO(admin, true))
	}
	return list, nil
}

// GetAdminStats 管理面板统计，各项计数并发执行
func (s *UserServiceImpl) GetAdminStats(ctx context.Context) (*dto.AdminStatsDTO, error) {
	stats := &dto.AdminStatsDTO{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalUsers, err = s.userRepo.CountUsers(gctx)
		return
	})
	g.Go(func() (err error) {
		now := time.Now()
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		stats.NewUsersToday, err = s.userRepo.CountUsersCreatedSince(gctx, startOfDay)
		return
	})
	g.Go(func() (err error) {
		stats.TotalPosts, err = s.postRepo.CountPosts(gctx)
		return
	})
	g.Go(func() (err error) {
		stats.PublishedPosts, err = s.postRepo.CountPublishedPosts(gctx)
		return
	})
	g.Go(func() (err error) {
		stats.TotalComments, err = s.commentRepo.CountComments(gctx)
		return
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// PromoteUser 将普通用户提升为管理员，超级管理员和已是管理员的用户不可被提升
func (s *UserServiceImpl) PromoteUser(ctx context.Context, id uint64) error {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.IsSuperuser || user.IsAdmin {
		return ErrPromoteNotAllowed
	}

	rows, err := s.userRepo.PromoteToAdmin(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPromoteNotAllowed
	}
	return nil
}

func (s *UserServiceImpl) GetPostCount(ctx context.Context, userID uint64) (int64, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, ErrUserNotFound
	}

	key := consts.UserPostCountKey + strconv.FormatUint(userID, 10)
	if count, err := redis.GetInt64(ctx, key); err == nil {
		return count, nil
	}

	count, err := s.postRepo.CountPostsByAuthor(ctx, userID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, count, postCountCacheTTL)
	return count, nil
}

// RequestPasswordReset 生成一次性重置凭据，有效期一小时
func (s *UserServiceImpl) RequestPasswordReset(ctx context.Context, email string) (*dto.PasswordResetTicketDTO, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	token := uuid.NewString()
	key := consts.PasswordResetKey + strconv.FormatUint(user.ID, 10)
	if err = redis.SetWithExpiration(ctx, key, token, passwordResetTTL); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "已签发密码重置凭据", "user_id", user.ID)

	return &dto.PasswordResetTicketDTO{UserID: user.ID, Token: token}, nil
}

func (s *UserServiceImpl) ResetPassword(ctx context.Context, uid uint64, token string, resetDTO *dto.PasswordResetDTO) error {
	if err := util.ValidateDTO(resetDTO); err != nil {
		return ErrParamInvalid
	}
	if resetDTO.NewPassword != resetDTO.ConfirmPassword {
		return ErrPasswordMismatch
	}

	key := consts.PasswordResetKey + strconv.FormatUint(uid, 10)
	value, err := redis.GetValue(ctx, key)
	if err != nil {
		return err
	}
	if value == "" || value != token {
		return ErrResetTokenInvalid
	}

	passwordHash, err := security.HashPassword(resetDTO.NewPassword)
	if err != nil {
		return err
	}
	if err = s.userRepo.UpdatePassword(ctx, uid, passwordHash); err != nil {
		return err
	}

	// 凭据一次性使用
	return redis.DeleteKey(ctx, key)
}

func (s *UserServiceImpl) issueTokenPair(user *model.User) (*dto.TokenDTO, error) {
	accessToken, err := security.GenerateAccessToken(user.ID, user.Role())
	if err != nil {
		return nil, err
	}
	refreshToken, err := security.GenerateRefreshToken(user.ID, user.Role())
	if err != nil {
		return nil, err
	}
	return &dto.TokenDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// toProfileDTO 模型转资料 DTO，withEmail 控制是否暴露邮箱
func toProfileDTO(user *model.User, withEmail bool) *dto.UserProfileDTO {
	profile := &dto.UserProfileDTO{}
	_ = copier.Copy(profile, user)

	profile.UserID = user.ID
	profile.Role = user.Role()
	profile.CreatedAt = user.CreatedAt.Format(time.RFC3339)
	if !withEmail {
		profile.Email = ""
	}
	if user.DateOfBirth != nil {
		dob := user.DateOfBirth.Format("2006-01-02")
		profile.DateOfBirth = &dob
	}
	if user.AvatarURL != nil {
		profile.AvatarURL = minio.GetPublicURL(*user.AvatarURL)
	} else {
		profile.AvatarURL = ""
	}
	return profile
}

func parseDate(value string) (*time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func isDuplicateKeyError(err error) bool {
	var mysqlErr *gosql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateCode
}
