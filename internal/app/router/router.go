package router

import (
	"log/slog"
	"time"

	"cwdash/internal/pkg/log"

	"github.com/gin-gonic/gin"
)

func New(logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), AccessLog(log.OrDefault(logger)))
	return r
}

// AccessLog 记录每个请求的方法, 路径, 状态码与耗时.
func AccessLog(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= 500 {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}
