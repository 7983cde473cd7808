package middleware

import (
	"github.com/haierkeys/fast-note-history-service/pkg/app"
	"github.com/haierkeys/fast-note-history-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// NoFound answers unmatched routes with ErrorNotFoundAPI, naming the method and path
// NoFound 404 处理，details 中带上请求方法与路径
func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		app.NewResponse(c).ToResponse(code.ErrorNotFoundAPI.WithDetails(c.Request.Method + " " + c.Request.URL.Path))
		c.Abort()
	}
}
