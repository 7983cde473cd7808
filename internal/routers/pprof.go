package routers

import (
	"net/http"
	"net/http/pprof"

	"github.com/haierkeys/fast-note-history-service/internal/middleware"
	"github.com/haierkeys/fast-note-history-service/internal/routers/api_router"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	// DefaultPrefix url prefix of pprof
	DefaultPrefix = "/debug/pprof"
)

// NewPrivateRouterWithLogger 创建私有路由（metrics、expvar，debug 模式下附带 pprof）
// 只应监听在内网地址上
func NewPrivateRouterWithLogger(runMode string, logger *zap.Logger) *gin.Engine {

	r := gin.New()

	if runMode == "debug" {
		r.Use(gin.Recovery())
	} else {
		r.Use(middleware.RecoveryWithLogger(logger))
	}

	// prom监控：history 迁移与写操作计数器注册在默认 registry 上
	r.GET("/debug/vars", api_router.Expvar)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/debug/system", api_router.System)

	if runMode == "debug" {
		mountPprof(r.Group(DefaultPrefix))
	}

	return r
}

// runtimeProfiles are served through pprof.Handler under DefaultPrefix
var runtimeProfiles = []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"}

func mountPprof(p *gin.RouterGroup) {
	p.GET("/", gin.WrapF(pprof.Index))
	p.GET("/cmdline", gin.WrapF(pprof.Cmdline))
	p.GET("/profile", gin.WrapF(pprof.Profile))
	p.Match([]string{http.MethodGet, http.MethodPost}, "/symbol", gin.WrapF(pprof.Symbol))
	p.GET("/trace", gin.WrapF(pprof.Trace))
	for _, name := range runtimeProfiles {
		p.GET("/"+name, gin.WrapH(pprof.Handler(name)))
	}
}
