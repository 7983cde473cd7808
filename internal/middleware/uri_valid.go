package middleware

import (
	"net/url"
	"unicode/utf8"

	"github.com/haierkeys/fast-note-history-service/pkg/app"
	"github.com/haierkeys/fast-note-history-service/pkg/code"
	"github.com/haierkeys/fast-note-history-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckURIValid rejects request paths whose percent-escapes do not decode to valid UTF-8
// CheckURIValid 请求路径无法解码为合法 UTF-8 时返回 400
func CheckURIValid(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Request.URL.EscapedPath()
		decoded, err := url.PathUnescape(raw)
		if err == nil && !utf8.ValidString(decoded) {
			err = url.EscapeError(raw)
		}
		if err != nil {
			lg.Error("invalid request uri",
				zap.String("path", raw),
				zap.String(logger.FieldTraceID, GetTraceIDFromGin(c)),
				zap.Error(err))
			app.NewResponse(c).ToResponse(code.ErrorInvalidParams.WithDetails("malformed URI: " + raw))
			c.Abort()
			return
		}
		c.Next()
	}
}
