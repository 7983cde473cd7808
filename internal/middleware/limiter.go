package middleware

import (
	"github.com/haierkeys/fast-note-history-service/pkg/app"
	"github.com/haierkeys/fast-note-history-service/pkg/code"
	"github.com/haierkeys/fast-note-history-service/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimiter 创建限流中间件
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bucket, ok := l.GetBucket(l.Key(c)); ok && bucket.TakeAvailable(1) == 0 {
			app.NewResponse(c).ToResponse(code.ErrorTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}
