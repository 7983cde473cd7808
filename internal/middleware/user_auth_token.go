package middleware

import (
	"strings"

	"github.com/haierkeys/fast-note-history-service/pkg/app"
	"github.com/haierkeys/fast-note-history-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// UserAuthTokenWithConfig 用户 Token 认证中间件（使用注入的密钥）
// The token is read from the Authorization header (optionally "Bearer "),
// the token header, or the token query parameter.
func UserAuthTokenWithConfig(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			app.NewResponse(c).ToResponse(code.ErrorNotUserAuthToken)
			c.Abort()
			return
		}

		user, err := app.ParseTokenWithKey(token, secretKey)
		if err != nil {
			app.NewResponse(c).ToResponse(code.ErrorInvalidUserAuthToken)
			c.Abort()
			return
		}
		app.SetUser(c, user)

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if s := c.GetHeader("Authorization"); s != "" {
		return strings.TrimSpace(strings.TrimPrefix(s, "Bearer "))
	}
	if s := c.GetHeader("Token"); s != "" {
		return s
	}
	if s, ok := c.GetQuery("token"); ok {
		return s
	}
	return ""
}
