// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/haierkeys/fast-note-history-service/internal/dao"
	"github.com/haierkeys/fast-note-history-service/internal/domain"
	"github.com/haierkeys/fast-note-history-service/internal/service"
	pkgapp "github.com/haierkeys/fast-note-history-service/pkg/app"
	"github.com/haierkeys/fast-note-history-service/pkg/limiter"
	"github.com/haierkeys/fast-note-history-service/pkg/workerpool"
	"github.com/haierkeys/fast-note-history-service/pkg/writequeue"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// 并发控制组件
	workerPool    *workerpool.Pool
	writeQueueMgr *writequeue.Manager // only when app.history-serialize-writes is on

	// Repository 层
	UserRepo    domain.UserRepository
	NoteRepo    domain.NoteRepository
	HistoryRepo domain.HistoryRepository

	// Service 层
	UserService    service.UserService
	NoteService    service.NoteService
	FolderService  service.FolderService
	HistoryService service.HistoryService

	// 基础设施组件
	TokenManager pkgapp.TokenManager
	Limiter      limiter.Face

	// 启动时间，用于健康检查
	StartTime time.Time

	// 关闭控制
	shutdownOnce sync.Once
	shutdownErr  error
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:    cfg,
		logger:    logger,
		DB:        db,
		StartTime: time.Now(),
	}

	// 初始化 Worker Pool
	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, logger)

	// 初始化 Write Queue Manager
	wqConfig := cfg.GetWriteQueueConfig()
	if cfg.App.HistorySerializeWrites {
		a.writeQueueMgr = writequeue.New(&wqConfig, logger)
	}

	a.Dao = dao.New(db, dao.WithLogger(logger))

	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Issuer:    pkgapp.DefaultTokenIssuer,
		Expiry:    cfg.GetTokenExpiry(),
	})

	fill := cfg.GetRateLimitFillInterval()
	a.Limiter = limiter.NewMethodLimiter().AddBuckets(
		limiter.BucketRule{Key: "/api/user", FillInterval: fill, Capacity: cfg.App.RateLimitCapacity, Quantum: cfg.App.RateLimitQuantum},
		limiter.BucketRule{Key: "/api/history", FillInterval: fill, Capacity: cfg.App.RateLimitCapacity, Quantum: cfg.App.RateLimitQuantum},
		limiter.BucketRule{Key: "/api/notes", FillInterval: fill, Capacity: cfg.App.RateLimitCapacity, Quantum: cfg.App.RateLimitQuantum},
		limiter.BucketRule{Key: "/api/folders", FillInterval: fill, Capacity: cfg.App.RateLimitCapacity, Quantum: cfg.App.RateLimitQuantum},
	)

	// 初始化 Repository 层
	a.UserRepo = dao.NewUserRepository(a.Dao)
	a.NoteRepo = dao.NewNoteRepository(a.Dao)
	a.HistoryRepo = dao.NewHistoryRepository(a.Dao)

	// 创建 ServiceConfig（从 AppConfig 提取 Service 层需要的配置）
	svcConfig := &service.ServiceConfig{
		User: service.UserServiceConfig{
			RegisterIsEnable: cfg.User.RegisterIsEnable,
		},
		Note: service.NoteServiceConfig{
			HistoryUpsertTimeout: cfg.App.HistoryUpsertTimeout,
		},
	}

	// 初始化 Service 层（依赖注入）
	a.HistoryService = service.NewHistoryService(a.HistoryRepo, a.NoteRepo, a.writeQueueMgr, logger)
	a.UserService = service.NewUserService(a.UserRepo, service.NewPasswordVerifier(a.UserRepo), a.TokenManager, logger, svcConfig)
	a.NoteService = service.NewNoteService(a.NoteRepo, a.HistoryService, a.workerPool, logger, svcConfig)
	a.FolderService = service.NewFolderService(a.NoteRepo)

	logger.Info("App container initialized successfully",
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers),
		zap.Bool("historySerializeWrites", cfg.App.HistorySerializeWrites))

	return a, nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// WorkerPool 获取 Worker Pool
func (a *App) WorkerPool() *workerpool.Pool {
	return a.workerPool
}

// GetAuthTokenKey 获取 Token 密钥
func (a *App) GetAuthTokenKey() string {
	return a.config.Security.AuthTokenKey
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 按顺序关闭：Worker Pool -> Write Queue Manager -> Database
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	a.shutdownOnce.Do(func() {
		a.shutdownErr = a.shutdown(ctx)
	})
	return a.shutdownErr
}

func (a *App) shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	var errs []error

	// 1. 关闭 Worker Pool（停止接受新任务，等待排队的历史记录更新完成）
	if err := a.workerPool.Shutdown(ctx); err != nil {
		a.logger.Warn("Worker pool shutdown error", zap.Error(err))
		errs = append(errs, fmt.Errorf("worker pool shutdown: %w", err))
	}

	// 2. 关闭 Write Queue Manager（排空所有队列）
	if a.writeQueueMgr != nil {
		if err := a.writeQueueMgr.Shutdown(ctx); err != nil {
			a.logger.Warn("write queue manager shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("write queue manager shutdown: %w", err))
		}
	}

	// 3. 关闭数据库连接
	if sqlDB, err := a.DB.DB(); err != nil {
		errs = append(errs, fmt.Errorf("failed to get sql.DB: %w", err))
	} else if err := sqlDB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}
	a.logger.Info("App container shutdown completed successfully")
	return nil
}
