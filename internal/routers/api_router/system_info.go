package api_router

import (
	"os"
	"runtime"
	"time"

	pkgapp "github.com/haierkeys/fast-note-history-service/pkg/app"
	"github.com/haierkeys/fast-note-history-service/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

var processStart = time.Now()

// SystemInfo 系统与运行时信息
type SystemInfo struct {
	StartTime time.Time   `json:"startTime"`
	Uptime    float64     `json:"uptime"` // 秒
	Runtime   RuntimeInfo `json:"runtime"`
	Memory    MemoryInfo  `json:"memory"`
	Host      HostInfo    `json:"host"`
	Process   ProcessInfo `json:"process"`
}

type RuntimeInfo struct {
	NumGoroutine int    `json:"numGoroutine"`
	MemAlloc     uint64 `json:"memAlloc"`
	MemSys       uint64 `json:"memSys"`
	HeapInuse    uint64 `json:"heapInuse"`
	NumGC        uint32 `json:"numGC"`
}

type MemoryInfo struct {
	Total       uint64  `json:"total"`
	Available   uint64  `json:"available"`
	UsedPercent float64 `json:"usedPercent"`
}

type HostInfo struct {
	Hostname string  `json:"hostname"`
	OS       string  `json:"os"`
	Platform string  `json:"platform"`
	Arch     string  `json:"arch"`
	Uptime   uint64  `json:"uptime"`
	Load1    float64 `json:"load1"`
	Load5    float64 `json:"load5"`
	Load15   float64 `json:"load15"`
}

type ProcessInfo struct {
	PID           int32   `json:"pid"`
	MemoryPercent float32 `json:"memoryPercent"`
	RSS           uint64  `json:"rss"`
}

// System returns runtime, host and process statistics; mounted on the private router.
// Probes that fail on the current platform leave their fields zero.
// System 获取系统与运行时信息（私有路由 /debug/system）
func System(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	data := SystemInfo{
		StartTime: processStart,
		Uptime:    time.Since(processStart).Seconds(),
		Runtime: RuntimeInfo{
			NumGoroutine: runtime.NumGoroutine(),
			MemAlloc:     m.Alloc,
			MemSys:       m.Sys,
			HeapInuse:    m.HeapInuse,
			NumGC:        m.NumGC,
		},
	}

	if vMem, err := mem.VirtualMemory(); err == nil {
		data.Memory = MemoryInfo{Total: vMem.Total, Available: vMem.Available, UsedPercent: vMem.UsedPercent}
	}
	if hInfo, err := host.Info(); err == nil {
		data.Host.Hostname = hInfo.Hostname
		data.Host.OS = hInfo.OS
		data.Host.Platform = hInfo.Platform
		data.Host.Arch = hInfo.KernelArch
		data.Host.Uptime = hInfo.Uptime
	}
	if loadStat, err := load.Avg(); err == nil {
		data.Host.Load1, data.Host.Load5, data.Host.Load15 = loadStat.Load1, loadStat.Load5, loadStat.Load15
	}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		data.Process.PID = p.Pid
		data.Process.MemoryPercent, _ = p.MemoryPercent()
		if info, err := p.MemoryInfo(); err == nil {
			data.Process.RSS = info.RSS
		}
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(data))
}
