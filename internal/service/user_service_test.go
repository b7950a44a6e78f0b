package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/security"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserServiceForTest(t *testing.T) (UserService, *fakeUserRepo, *fakePostRepo, *fakeCommentRepo) {
	t.Helper()
	users := newFakeUserRepo()
	posts := newFakePostRepo(users, newFakeCategoryRepo())
	comments := newFakeCommentRepo(users)
	svc := NewUserService(users, posts, comments)
	return svc, users, posts, comments
}

func registerUser(t *testing.T, svc UserService, username, email, password string) {
	t.Helper()
	err := svc.Register(context.Background(), &dto.RegisterDTO{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
}

func TestRegisterAndLogin(t *testing.T) {
	svc, users, _, _ := newUserServiceForTest(t)
	registerUser(t, svc, "alice", "Alice@Example.com", "secret123")

	stored, err := users.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
	// 邮箱统一转小写存储
	assert.Equal(t, "alice@example.com", stored.Email)
	assert.True(t, stored.IsUser)
	assert.NotEqual(t, "secret123", stored.Password)

	tokens, err := svc.Login(context.Background(), &dto.CredentialDTO{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := security.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.UserID)
	assert.Equal(t, model.RoleUser, claims.Role)
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _, _, _ := newUserServiceForTest(t)
	registerUser(t, svc, "alice", "alice@example.com", "secret123")

	err := svc.Register(context.Background(), &dto.RegisterDTO{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrUserUsernameExist)

	err = svc.Register(context.Background(), &dto.RegisterDTO{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrUserEmailExist)
}

func TestRegisterInvalidInput(t *testing.T) {
	svc, _, _, _ := newUserServiceForTest(t)

	// 密码太短
	err := svc.Register(context.Background(), &dto.RegisterDTO{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "abc",
	})
	assert.ErrorIs(t, err, ErrParamInvalid)

	// 个人简介超出字段长度
	longBio := strings.Repeat("a", 251)
	err = svc.Register(context.Background(), &dto.RegisterDTO{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Bio:      &longBio,
	})
	assert.ErrorIs(t, err, ErrParamInvalid)

	// 出生日期格式错误
	badDate := "01/02/2000"
	err = svc.Register(context.Background(), &dto.RegisterDTO{
		Username:    "alice",
		Email:       "alice@example.com",
		Password:    "secret123",
		DateOfBirth: &badDate,
	})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestLoginWrongCredentials(t *testing.T) {
	svc, _, _, _ := newUserServiceForTest(t)
	registerUser(t, svc, "alice", "alice@example.com", "secret123")

	// 用户不存在和密码错误返回同一错误，不泄露账号是否存在
	_, err := svc.Login(context.Background(), &dto.CredentialDTO{Username: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)

	_, err = svc.Login(context.Background(), &dto.CredentialDTO{Username: "alice", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	svc, _, _, _ := newUserServiceForTest(t)
	registerUser(t, svc, "alice", "alice@example.com", "secret123")

	tokens, err := svc.Login(context.Background(), &dto.CredentialDTO{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	// 访问 Token 不能用于刷新
	_, err = svc.RefreshToken(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	refreshed, err := svc.RefreshToken(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGetProfile(t *testing.T) {
	svc, users, _, _ := newUserServiceForTest(t)
	registerUser(t, svc, "alice", "alice@example.com", "secret123")

	stored, err := users.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)

	profile, err := svc.GetProfile(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Equal(t, model.RoleUser, profile.Role)

	_, err = svc.GetProfile(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListUsersExcludesAdmins(t *testing.T) {
	svc, users, _, _ := newUserServiceForTest(t)
	registerUser(t, svc, "alice", "alice@example.com", "secret123")
	registerUser(t, svc, "bob", "bob@example.com", "secret123")

	admin := &model.User{Username: "root", Email: "root@example.com", Password: "x", IsSuperuser: true}
	require.NoError(t, users.CreateUser(context.Background(), admin))

	page, err := svc.ListUsers(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, page.List, 2)
	assert.False(t, page.HasMore)
	// 普通用户列表不暴露邮箱
	assert.Empty(t, page.List[0].Email)
}

func TestGetAdminStats(t *testing.T) {
	svc, users, posts, comments := newUserServiceForTest(t)
	registerUser(t, svc, "alice", "alice@example.com", "secret123")

	stored, err := users.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)

	require.NoError(t, posts.CreatePost(context.Background(), &model.Post{
		Title: "a", Slug: "a", AuthorID: stored.ID, IsPublished: true,
	}))
	require.NoError(t, posts.CreatePost(context.Background(), &model.Post{
		Title: "b", Slug: "b", AuthorID: stored.ID, IsPublished: false,
	}))
	require.NoError(t, comments.CreateComment(context.Background(), &model.Comment{
		PostID: 1, AuthorID: stored.ID, Content: "hi",
	}))

	// 昨天注册的用户不计入今日新增
	veteran := &model.User{
		Username: "veteran", Email: "veteran@example.com", Password: "x",
		IsUser: true, CreatedAt: time.Now().AddDate(0, 0, -1),
	}
	require.NoError(t, users.CreateUser(context.Background(), veteran))

	stats, err := svc.GetAdminStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.NewUsersToday)
	assert.Equal(t, int64(2), stats.TotalPosts)
	assert.Equal(t, int64(1), stats.PublishedPosts)
	assert.Equal(t, int64(1), stats.TotalComments)
}

func TestListAdmins(t *testing.T) {
	svc, users, _, _ := newUserServiceForTest(t)
	registerUser(t, svc, "alice", "alice@example.com", "secret123")
	registerUser(t, svc, "bob", "bob@example.com", "secret123")

	root := &model.User{Username: "root", Email: "root@example.com", Password: "x", IsSuperuser: true}
	require.NoError(t, users.CreateUser(context.Background(), root))

	stored, err := users.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NoError(t, svc.PromoteUser(context.Background(), stored.ID))

	// 只返回管理员，不含普通用户和超级管理员
	admins, err := svc.ListAdmins(context.Background())
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "alice", admins[0].Username)
	assert.Equal(t, model.RoleAdmin, admins[0].Role)
}

func TestPromoteUser(t *testing.T) {
	svc, users, _, _ := newUserServiceForTest(t)
	registerUser(t, svc, "alice", "alice@example.com", "secret123")

	stored, err := users.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)

	require.NoError(t, svc.PromoteUser(context.Background(), stored.ID))

	promoted, err := users.GetUserById(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin)
	assert.Equal(t, model.RoleAdmin, promoted.Role())

	// 已是管理员不可重复提升
	err = svc.PromoteUser(context.Background(), stored.ID)
	assert.ErrorIs(t, err, ErrPromoteNotAllowed)

	root := &model.User{Username: "root", Email: "root@example.com", Password: "x", IsSuperuser: true}
	require.NoError(t, users.CreateUser(context.Background(), root))
	err = svc.PromoteUser(context.Background(), root.ID)
	assert.ErrorIs(t, err, ErrPromoteNotAllowed)

	err = svc.PromoteUser(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
