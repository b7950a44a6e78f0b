package middleware

import (
	"Inkwell/internal/pkg/consts"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const viewerCookieMaxAge = 60 * 60 * 24 * 365

// ViewerMiddleware 为匿名访客下发会话标识 cookie，用于浏览计数去重
func ViewerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, err := c.Cookie(consts.ViewerCookie)
		if err != nil || viewerID == "" {
			viewerID = uuid.NewString()
			c.SetCookie(consts.ViewerCookie, viewerID, viewerCookieMaxAge, "/", "", false, true)
		}

		c.Set(consts.ViewerCookie, viewerID)
		c.Next()
	}
}
