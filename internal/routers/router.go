package routers

import (
	"time"

	"github.com/haierkeys/fast-note-history-service/internal/app"
	"github.com/haierkeys/fast-note-history-service/internal/middleware"
	"github.com/haierkeys/fast-note-history-service/internal/routers/api_router"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// NewRouter 创建对外 HTTP 路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	r := gin.New()
	r.Use(middleware.CheckURIValid(appContainer.Logger()))

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))
		api.Use(middleware.RateLimiter(appContainer.Limiter))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.LangWithTranslator(uni))

		// 创建 Handlers（注入 App Container）
		systemHandler := api_router.NewSystemHandler(appContainer)
		userHandler := api_router.NewUserHandler(appContainer)
		noteHandler := api_router.NewNoteHandler(appContainer)
		folderHandler := api_router.NewFolderHandler(appContainer)
		historyHandler := api_router.NewHistoryHandler(appContainer)

		// 无需认证
		api.GET("/version", systemHandler.Version)
		api.GET("/health", systemHandler.Health)
		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)

		auth := api.Group("", middleware.UserAuthTokenWithConfig(cfg.Security.AuthTokenKey))
		{
			auth.GET("/user/info", userHandler.UserInfo)
			auth.POST("/user/password", userHandler.UserChangePassword)
			auth.POST("/user/avatar", userHandler.UserAvatar)

			auth.GET("/history", historyHandler.Get)
			auth.POST("/history", historyHandler.Replace)
			auth.DELETE("/history", historyHandler.DeleteAll)
			auth.POST("/history/:noteId", historyHandler.SetPinned)
			auth.DELETE("/history/:noteId", historyHandler.DeleteOne)

			auth.POST("/notes", noteHandler.Create)
			auth.GET("/notes", noteHandler.List)
			auth.GET("/notes/:noteId", noteHandler.Get)
			auth.PUT("/notes/:noteId", noteHandler.Update)
			auth.DELETE("/notes/:noteId", noteHandler.Delete)
			auth.PUT("/notes/:noteId/move", noteHandler.Move)

			auth.POST("/folders", folderHandler.Create)
			auth.DELETE("/folders/:folderId", folderHandler.Delete)
		}
	}

	r.NoRoute(middleware.NoFound())

	return r
}
