package cmd

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// bootstrapLevelEnv overrides the level of the startup logger (debug, info, warn, error)
// bootstrapLevelEnv 覆盖启动日志器的级别
const bootstrapLevelEnv = "FNHS_BOOT_LOG_LEVEL"

// bootstrapLogger writes to stderr until the configured logger is built by NewServer
// bootstrapLogger 在 NewServer 构建正式日志器之前输出到 stderr
var bootstrapLogger = newBootstrapLogger()

func newBootstrapLogger() *zap.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		bootstrapLevel(),
	)
	return zap.New(core, zap.AddCaller())
}

// bootstrapLevel reads FNHS_BOOT_LOG_LEVEL, then falls back to DEBUG=1 for debug output.
func bootstrapLevel() zapcore.Level {
	if v := os.Getenv(bootstrapLevelEnv); v != "" {
		if lvl, err := zapcore.ParseLevel(v); err == nil {
			return lvl
		}
	}
	if os.Getenv("DEBUG") != "" {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

// BootstrapLogger 获取启动阶段日志器
func BootstrapLogger() *zap.Logger {
	return bootstrapLogger
}
