// Package app 提供应用容器，封装所有依赖和服务
package app

// Build metadata, overridden at link time:
//
//	go build -ldflags "-X github.com/haierkeys/fast-note-history-service/internal/app.Version=1.2.0"
var (
	Version   = "1.0.0"
	GitTag    = "2000.01.01.release"
	BuildTime = "2000-01-01T00:00:00+0800"
)

// Name 应用名称，出现在启动横幅、X-App-Version 所在的响应以及 version 命令中
const Name = "Fast Note History Service"
