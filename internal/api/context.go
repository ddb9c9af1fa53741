package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"hirePortal/internal/api/middleware"
)

func usernameFromContext(c *gin.Context) (string, bool) {
	value, ok := c.Get("username")
	if !ok {
		return "", false
	}
	username, ok := value.(string)
	return username, ok && username != ""
}

func roleFromContext(c *gin.Context) (string, bool) {
	value, ok := c.Get("role")
	if !ok {
		return "", false
	}
	role, ok := value.(string)
	return role, ok && role != ""
}

func loggerFromContext(c *gin.Context) *slog.Logger {
	return middleware.LoggerFromContext(c)
}
