package consts

const (
	PasswordResetKey      = "password:reset:token:"
	PostAnonViewKey       = "post:view:anon:"
	UserProfileKey        = "user:profile:"
	UserPostCountKey      = "user:post:count:"
	UserFollowerCountKey  = "user:follower:count:"
	UserFollowingCountKey = "user:following:count:"
)
