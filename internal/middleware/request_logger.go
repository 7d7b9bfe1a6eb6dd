package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ==================== 请求日志中间件 ====================

// RequestLogger 记录每个请求的方法、路径、状态码和耗时
// 5xx 记 error，4xx 记 warn，其余 info
func RequestLogger(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"ip", c.ClientIP(),
		}
		switch {
		case c.Writer.Status() >= 500:
			fields = append(fields, "errors", c.Errors.String())
			logger.Errorw("请求处理失败", fields...)
		case c.Writer.Status() >= 400:
			logger.Warnw("请求被拒绝", fields...)
		default:
			logger.Infow("请求完成", fields...)
		}
	}
}
