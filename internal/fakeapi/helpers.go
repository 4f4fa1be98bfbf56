package fakeapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func respondWithError(c *gin.Context, logger *zap.Logger, status int, route string, message string) {
	logger.Debug("returning error",
		zap.String("route", route),
		zap.Int("status", status),
		zap.String("message", message))
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

func route(c *gin.Context) string {
	return routeKey(c.Request.Method, c.FullPath())
}
