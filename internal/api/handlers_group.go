package api

import "Inkwell/internal/api/handler"

type HandlersGroup struct {
	UserHandler        *handler.UserHandler
	UserFollowsHandler *handler.UserFollowsHandler
	PostHandler        *handler.PostHandler
	PostActionHandler  *handler.PostActionHandler
	CommentHandler     *handler.CommentHandler
	CategoryHandler    *handler.CategoryHandler
}
