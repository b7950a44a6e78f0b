package api

import (
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		// 注册与登录
		apiGroup.POST("/register", group.UserHandler.Register)
		apiGroup.POST("/login", group.UserHandler.Login)
		apiGroup.POST("/token/refresh", group.UserHandler.RefreshToken)

		// 密码重置
		apiGroup.POST("/password-reset-request", group.UserHandler.RequestPasswordReset)
		apiGroup.POST("/password-reset/:uid/:token", group.UserHandler.ResetPassword)

		authGroup := apiGroup.Group("")
		authGroup.Use(middleware.AuthMiddleware())
		{
			authGroup.POST("/logout", group.UserHandler.Logout)
			authGroup.GET("/profile", group.UserHandler.GetProfile)
			authGroup.PUT("/profile", group.UserHandler.UpdateProfile)
			authGroup.POST("/profile/avatar", group.UserHandler.UpdateAvatar)
		}

		// 公开用户信息
		apiGroup.GET("/users/:username/profile", group.UserHandler.GetPublicProfile)
		apiGroup.GET("/users-list", group.UserHandler.ListUsers)

		// 用户维度计数与关注关系
		userGroup := apiGroup.Group("/user")
		{
			userGroup.GET("/:id/post-count", group.UserHandler.GetPostCount)
			userGroup.GET("/:id/followers-count", group.UserFollowsHandler.GetFollowerCount)
			userGroup.GET("/:id/following-count", group.UserFollowsHandler.GetFollowingCount)
			userGroup.GET("/:id/followers", group.UserFollowsHandler.GetFollowers)
			userGroup.GET("/:id/following", group.UserFollowsHandler.GetFollowing)

			followAuthGroup := userGroup.Group("")
			followAuthGroup.Use(middleware.AuthMiddleware())
			{
				followAuthGroup.POST("/:id/follow", group.UserFollowsHandler.ToggleFollow)
				followAuthGroup.GET("/:id/check-follow", group.UserFollowsHandler.CheckFollow)
			}
		}

		// 管理面板
		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(model.RoleAdmin, model.RoleSuperuser))
		{
			adminGroup.GET("/users", group.UserHandler.ListAdmins)
			adminGroup.GET("/stats", group.UserHandler.GetAdminStats)
			adminGroup.POST("/users/:id/promote", group.UserHandler.PromoteUser)
		}

		// 分类
		categoryGroup := apiGroup.Group("/categories")
		{
			categoryGroup.GET("", group.CategoryHandler.ListCategories)
			categoryGroup.GET("/:id", group.CategoryHandler.GetCategory)
			categoryGroup.POST("", group.CategoryHandler.CreateCategory)
			categoryGroup.PUT("/:id", group.CategoryHandler.UpdateCategory)
			categoryGroup.DELETE("/:id", group.CategoryHandler.DeleteCategory)
		}

		// 文章
		postGroup := apiGroup.Group("/posts")
		{
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.PostHandler.ListPosts)
				authOptGroup.GET("/recent", group.PostHandler.ListRecent)
				authOptGroup.GET("/:slug", group.PostHandler.GetPost)
				authOptGroup.GET("/:slug/comments", group.CommentHandler.ListComments)
				authOptGroup.GET("/:slug/analytics", group.PostActionHandler.GetAnalytics)

				viewGroup := authOptGroup.Group("")
				viewGroup.Use(middleware.ViewerMiddleware())
				{
					viewGroup.POST("/:slug/increment_views", group.PostActionHandler.IncrementViews)
				}
			}

			postAuthGroup := postGroup.Group("")
			postAuthGroup.Use(middleware.AuthMiddleware())
			{
				postAuthGroup.POST("", group.PostHandler.CreatePost)
				postAuthGroup.PUT("/:slug", group.PostHandler.UpdatePost)
				postAuthGroup.PATCH("/:slug", group.PostHandler.UpdatePost)
				postAuthGroup.DELETE("/:slug", group.PostHandler.DeletePost)
				postAuthGroup.POST("/:slug/image", group.PostHandler.UploadImage)
				postAuthGroup.POST("/:slug/like", group.PostActionHandler.ToggleLike)
				postAuthGroup.POST("/:slug/comments", group.CommentHandler.CreateComment)
			}
		}

		// 评论
		commentGroup := apiGroup.Group("/comments")
		commentGroup.Use(middleware.AuthMiddleware())
		{
			commentGroup.PUT("/:id", group.CommentHandler.UpdateComment)
			commentGroup.DELETE("/:id", group.CommentHandler.DeleteComment)
		}
	}

	return r
}
