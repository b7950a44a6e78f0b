package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFollowServiceForTest(t *testing.T) (UserFollowService, *fakeUserRepo, *fakeUserFollowRepo) {
	t.Helper()
	users := newFakeUserRepo()
	follows := newFakeUserFollowRepo()
	svc := NewUserFollowService(users, follows)
	return svc, users, follows
}

func TestToggleFollowSelf(t *testing.T) {
	svc, users, _ := newUserFollowServiceForTest(t)
	alice := seedUser(t, users, "alice")

	_, err := svc.ToggleFollow(context.Background(), alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrUserFollowSelf)
}

func TestToggleFollowUnknownTarget(t *testing.T) {
	svc, users, _ := newUserFollowServiceForTest(t)
	alice := seedUser(t, users, "alice")

	_, err := svc.ToggleFollow(context.Background(), alice.ID, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestToggleFollowCreatesThenRemoves(t *testing.T) {
	svc, users, follows := newUserFollowServiceForTest(t)
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	result, err := svc.ToggleFollow(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, result.IsFollowing)

	count, err := follows.GetUserFollowerCount(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// 再次切换即取消关注
	result, err = svc.ToggleFollow(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, result.IsFollowing)

	count, err = follows.GetUserFollowerCount(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestCheckFollow(t *testing.T) {
	svc, users, _ := newUserFollowServiceForTest(t)
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	result, err := svc.CheckFollow(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, result.IsFollowing)

	_, err = svc.ToggleFollow(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)

	result, err = svc.CheckFollow(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, result.IsFollowing)

	_, err = svc.CheckFollow(context.Background(), alice.ID, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetFollowersAndFollowing(t *testing.T) {
	svc, users, _ := newUserFollowServiceForTest(t)
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")
	carol := seedUser(t, users, "carol")

	_, err := svc.ToggleFollow(context.Background(), bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = svc.ToggleFollow(context.Background(), carol.ID, alice.ID)
	require.NoError(t, err)
	_, err = svc.ToggleFollow(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)

	followers, err := svc.GetFollowers(context.Background(), alice.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.Equal(t, "bob", followers[0].Username)
	assert.Equal(t, "carol", followers[1].Username)

	following, err := svc.GetFollowing(context.Background(), alice.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "bob", following[0].Username)

	_, err = svc.GetFollowers(context.Background(), 999, 1, 10)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
