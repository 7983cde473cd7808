// Package upgrade runs one-shot data migrations recorded in schema_version
package upgrade

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"
	"gorm.io/gorm"
)

// SchemaVersion 数据库版本记录表
type SchemaVersion struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Version     string    `gorm:"not null;uniqueIndex;type:varchar(64)" json:"version"`
	Description string    `gorm:"type:text" json:"description"`
	AppliedAt   time.Time `gorm:"not null" json:"applied_at"`
}

// TableName 指定表名
func (SchemaVersion) TableName() string {
	return "schema_version"
}

// Migration 定义升级接口
// Up runs inside a transaction; returning an error rolls back the migration and its version record.
type Migration interface {
	Version() string
	Description() string
	Up(ctx context.Context, tx *gorm.DB) error
}

// MigrationManager 升级管理器
type MigrationManager struct {
	db         *gorm.DB
	logger     *zap.Logger
	migrations []Migration
}

// NewMigrationManager 创建升级管理器
// 未传入 migrations 时使用 DefaultMigrations
func NewMigrationManager(db *gorm.DB, logger *zap.Logger, migrations ...Migration) *MigrationManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(migrations) == 0 {
		migrations = DefaultMigrations(logger)
	}
	return &MigrationManager{
		db:         db,
		logger:     logger,
		migrations: migrations,
	}
}

// DefaultMigrations 返回所有已注册的升级脚本
func DefaultMigrations(logger *zap.Logger) []Migration {
	return []Migration{
		// 在这里注册所有的升级脚本
		NewHistoryNoteIDMigrate(logger),
	}
}

// canonicalVersion adds the "v" prefix semver requires
func canonicalVersion(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// Run 执行所有未应用的升级，按语义化版本从小到大
func (m *MigrationManager) Run(ctx context.Context) error {
	m.logger.Info("Migration started")

	// 确保 schema_version 表存在
	if err := m.db.WithContext(ctx).AutoMigrate(&SchemaVersion{}); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// 获取已应用的数据库版本
	appliedVersions, err := m.getAppliedVersions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied versions: %w", err)
	}

	pending := make([]Migration, 0, len(m.migrations))
	for _, migration := range m.migrations {
		if !semver.IsValid(canonicalVersion(migration.Version())) {
			return fmt.Errorf("migration %q has an invalid version", migration.Version())
		}
		if appliedVersions[migration.Version()] {
			continue
		}
		pending = append(pending, migration)
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return semver.Compare(canonicalVersion(pending[i].Version()), canonicalVersion(pending[j].Version())) < 0
	})

	// 执行所有未执行的升级
	executed := 0
	for _, migration := range pending {
		m.logger.Info("applying migration",
			zap.String("scriptVersion", migration.Version()),
			zap.String("desc", migration.Description()))

		// 在事务中执行升级
		if err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(ctx, tx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			// 记录版本
			record := &SchemaVersion{
				Version:     migration.Version(),
				Description: migration.Description(),
				AppliedAt:   time.Now(),
			}
			if err := tx.Create(record).Error; err != nil {
				return fmt.Errorf("failed to record version: %w", err)
			}

			return nil
		}); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration.Version(), err)
		}

		m.logger.Info("migration applied successfully", zap.String("scriptVersion", migration.Version()))
		executed++
	}

	if executed == 0 {
		m.logger.Info("database is already up to date")
	} else {
		m.logger.Info("upgrade completed", zap.Int("migrations_applied", executed))
	}

	return nil
}

// getAppliedVersions 获取已应用的数据库版本
func (m *MigrationManager) getAppliedVersions(ctx context.Context) (map[string]bool, error) {
	var versions []SchemaVersion
	if err := m.db.WithContext(ctx).Find(&versions).Error; err != nil {
		return nil, err
	}

	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v.Version] = true
	}
	return applied, nil
}
