// Package task runs background maintenance jobs on cron schedules
package task

import (
	"strings"

	"github.com/haierkeys/fast-note-history-service/internal/app"
	"github.com/haierkeys/fast-note-history-service/pkg/safe_close"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ScheduleDisabled turns a task off in config
const ScheduleDisabled = "off"

// Manager 任务管理器,负责创建和管理所有任务
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
	app       *app.App
}

// NewManager 创建任务管理器
func NewManager(logger *zap.Logger, sc *safe_close.SafeClose, a *app.App) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		logger:    logger,
		app:       a,
	}
}

// ParseSchedule parses a standard cron spec or descriptor such as "@every 24h".
// "off" returns a nil schedule.
func ParseSchedule(spec string) (cron.Schedule, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == ScheduleDisabled {
		return nil, nil
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, errors.Wrapf(err, "parse schedule %q", spec)
	}
	return schedule, nil
}

// RegisterTasks 注册所有任务
func (m *Manager) RegisterTasks() error {
	cfg := m.app.Config()

	schedule, err := ParseSchedule(cfg.App.HistoryCompactSchedule)
	if err != nil {
		return err
	}
	if schedule == nil {
		m.logger.Info("history compact task is disabled")
		return nil
	}
	m.scheduler.AddTask(NewHistoryCompactTask(m.app.UserService, m.app.HistoryService, schedule, m.logger))
	return nil
}

// Start 启动所有已注册的任务
func (m *Manager) Start() {
	m.scheduler.Start()
}
