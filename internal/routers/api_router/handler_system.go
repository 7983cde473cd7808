package api_router

import (
	"time"

	"github.com/haierkeys/fast-note-history-service/internal/app"
	pkgapp "github.com/haierkeys/fast-note-history-service/pkg/app"
	"github.com/haierkeys/fast-note-history-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// SystemHandler 版本与健康检查处理器
type SystemHandler struct {
	*Handler
}

// NewSystemHandler 创建 SystemHandler 实例
func NewSystemHandler(a *app.App) *SystemHandler {
	return &SystemHandler{Handler: NewHandler(a)}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status   string  `json:"status"`   // "healthy" 或 "unhealthy"
	Version  string  `json:"version"`  // 服务版本号
	Uptime   float64 `json:"uptime"`   // 运行时间（秒）
	Database string  `json:"database"` // "connected" 或 "error"
}

// Health 健康检查接口
// @Summary 健康检查
// @Description 检查服务健康状态，包括数据库连接
// @Tags System
// @Produce json
// @Success 200 {object} pkgapp.Res{data=HealthResponse}
// @Failure 500 {object} pkgapp.Res{data=HealthResponse}
// @Router /api/health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:   "healthy",
		Version:  h.App.Version().Version,
		Uptime:   time.Since(h.App.StartTime).Seconds(),
		Database: "connected",
	}

	sqlDB, err := h.App.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		h.logError(c.Request.Context(), "SystemHandler.Health", err)
		resp.Status = "unhealthy"
		resp.Database = "error"
		pkgapp.NewResponse(c).ToResponse(code.ErrorDBQuery.WithData(resp))
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(resp))
}

// Version retrieves server version information
// @Summary Get server version info
// @Description Get current server software version, Git tag, and build time
// @Tags System
// @Produce json
// @Success 200 {object} pkgapp.Res{data=pkgapp.VersionInfo} "Success"
// @Router /api/version [get]
func (h *SystemHandler) Version(c *gin.Context) {
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(h.App.Version()))
}
