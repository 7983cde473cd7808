package upgrade

import (
	"context"
	"fmt"

	"github.com/haierkeys/fast-note-history-service/internal/dao"
	"github.com/haierkeys/fast-note-history-service/internal/service"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HistoryNoteIDMigrate rewrites legacy LZ-compressed note ids in every stored
// history blob to the canonical encoding, once.
// 将所有用户历史记录中的旧版压缩 ID 转换为标准编码并持久化
type HistoryNoteIDMigrate struct {
	logger *zap.Logger
}

func NewHistoryNoteIDMigrate(logger *zap.Logger) *HistoryNoteIDMigrate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryNoteIDMigrate{logger: logger}
}

// Version 返回版本号
func (m *HistoryNoteIDMigrate) Version() string {
	return "1.0.0"
}

// Description 返回描述
func (m *HistoryNoteIDMigrate) Description() string {
	return "Persist canonical note ids for legacy compressed ids in user history"
}

// Up 执行升级
func (m *HistoryNoteIDMigrate) Up(ctx context.Context, tx *gorm.DB) error {
	d := dao.New(tx, dao.WithLogger(m.logger))
	users := dao.NewUserRepository(d)
	history := service.NewHistoryService(dao.NewHistoryRepository(d), dao.NewNoteRepository(d), nil, m.logger)

	uids, err := users.GetAllUIDs(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	total := 0
	for _, uid := range uids {
		n, err := history.MigrateStored(ctx, uid)
		if err != nil {
			return fmt.Errorf("migrate history of user %d: %w", uid, err)
		}
		if n > 0 {
			m.logger.Info("HistoryNoteIDMigrate: user history migrated", zap.Int64("uid", uid), zap.Int("ids", n))
		}
		total += n
	}

	m.logger.Info("HistoryNoteIDMigrate: done", zap.Int("users", len(uids)), zap.Int("ids", total))
	return nil
}
