package wire

import (
	"Inkwell/internal/api"
	"Inkwell/internal/api/handler"
	"Inkwell/internal/repository"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

func BuildApplication(db *gorm.DB) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	postRepo := repository.NewPostRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	postActionRepo := repository.NewPostActionRepo(db)
	userFollowRepo := repository.NewUserFollowRepo(db)

	userService := service.NewUserService(userRepo, postRepo, commentRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	postService := service.NewPostService(postRepo, categoryRepo, commentRepo, postActionRepo)
	postActionService := service.NewPostActionService(postRepo, commentRepo, postActionRepo)
	commentService := service.NewCommentService(postRepo, commentRepo)
	userFollowService := service.NewUserFollowService(userRepo, userFollowRepo)

	handlers := &api.HandlersGroup{
		UserHandler:        handler.NewUserHandler(userService),
		UserFollowsHandler: handler.NewUserFollowsHandler(userFollowService),
		PostHandler:        handler.NewPostHandler(postService),
		PostActionHandler:  handler.NewPostActionHandler(postActionService),
		CommentHandler:     handler.NewCommentHandler(commentService),
		CategoryHandler:    handler.NewCategoryHandler(categoryService),
	}

	router := api.SetupRouter(handlers)

	return &ApplicationContainer{
		Router: router,
		DB:     db,
	}, nil
}
