package middleware

import (
	"github.com/gin-gonic/gin"
)

// AppInfo exposes the service name and version on every response
func AppInfo(name, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)
		c.Header("X-App-Version", version)
		c.Next()
	}
}
