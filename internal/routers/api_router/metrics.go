package api_router

import (
	"expvar"
	"runtime"
	"time"

	"github.com/haierkeys/fast-note-history-service/internal/app"

	"github.com/gin-gonic/gin"
)

func init() {
	expvar.Publish("app", expvar.Func(func() any {
		return map[string]any{
			"name":      app.Name,
			"version":   app.Version,
			"gitTag":    app.GitTag,
			"buildTime": app.BuildTime,
		}
	}))
	expvar.Publish("uptimeSeconds", expvar.Func(func() any {
		return int64(time.Since(processStart).Seconds())
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
}

// Expvar serves /debug/vars: memstats, cmdline plus the app/uptime/goroutine vars above
// Expvar 输出 expvar 指标（含应用版本、运行时长与协程数），挂载在私有路由 /debug/vars
var Expvar = gin.WrapH(expvar.Handler())
