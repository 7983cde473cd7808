package task

import (
	"context"

	"github.com/haierkeys/fast-note-history-service/internal/service"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// HistoryCompactTask persists canonical ids for every user's stored history.
// Clients may still replace their history with legacy compressed ids after the
// one-shot upgrade; reads migrate those in memory, this task writes them back.
type HistoryCompactTask struct {
	users    service.UserService
	history  service.HistoryService
	schedule cron.Schedule
	logger   *zap.Logger
}

func NewHistoryCompactTask(users service.UserService, history service.HistoryService, schedule cron.Schedule, logger *zap.Logger) *HistoryCompactTask {
	return &HistoryCompactTask{
		users:    users,
		history:  history,
		schedule: schedule,
		logger:   logger,
	}
}

// Name 返回任务名称
func (t *HistoryCompactTask) Name() string {
	return "HistoryCompact"
}

func (t *HistoryCompactTask) Schedule() cron.Schedule {
	return t.schedule
}

// IsStartupRun 启动时不执行，启动前的升级已处理过存量数据
func (t *HistoryCompactTask) IsStartupRun() bool {
	return false
}

// Run 遍历所有用户，单个用户失败不影响其他用户
func (t *HistoryCompactTask) Run(ctx context.Context) error {
	uids, err := t.users.GetAllUIDs(ctx)
	if err != nil {
		return err
	}

	total := 0
	for _, uid := range uids {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		n, err := t.history.MigrateStored(ctx, uid)
		if err != nil {
			t.logger.Warn("task log",
				zap.String("task", t.Name()),
				zap.Int64("uid", uid),
				zap.Error(err))
			continue
		}
		total += n
	}

	t.logger.Info("task log",
		zap.String("task", t.Name()),
		zap.Int("users", len(uids)),
		zap.Int("ids", total),
		zap.String("msg", "success"))
	return nil
}
