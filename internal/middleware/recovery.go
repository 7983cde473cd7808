package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/haierkeys/fast-note-history-service/pkg/app"
	"github.com/haierkeys/fast-note-history-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger 创建带日志器的 Recovery 中间件
func RecoveryWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			msg := fmt.Sprintf("%v", r)
			if err, ok := r.(error); ok {
				msg = err.Error()
			}
			lg.Error("Recovered from panic",
				zap.String("router", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.String("query", c.Request.URL.RawQuery),
				zap.String("ip", c.ClientIP()),
				zap.String("panic_value", msg),
				zap.String("stack", string(debug.Stack())),
			)
			app.NewResponse(c).ToResponse(code.ErrorServerInternal.WithDetails(msg))
			c.Abort()
		}()

		c.Next()
	}
}
