package middleware

import (
	"Inkwell/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// CheckRoles 检查当前用户的角色是否在指定范围内
func CheckRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")

		hasPermission := false
		for _, required := range requiredRoles {
			if required == role {
				hasPermission = true
				break
			}
		}

		if !hasPermission {
			response.Fail(c, response.Forbidden, "权限不足：无权访问该资源")
			c.Abort()
			return
		}

		c.Next()
	}
}
