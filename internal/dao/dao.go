// Package dao 实现数据访问层
package dao

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/haierkeys/fast-note-history-service/internal/model"
	"github.com/haierkeys/fast-note-history-service/pkg/util"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Type            string // sqlite, mysql, postgres
	Path            string // sqlite file path
	UserName        string
	Password        string
	Host            string // host[:port]
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string // e.g. "30m"
	ConnMaxIdleTime string
	RunMode         string
	Tracing         bool
}

// Dao holds the database handle shared by the repositories
type Dao struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Option Dao 配置项
type Option func(*Dao)

// WithLogger 设置日志器
func WithLogger(lg *zap.Logger) Option {
	return func(d *Dao) {
		d.logger = lg
	}
}

// New 创建 Dao
func New(db *gorm.DB, opts ...Option) *Dao {
	d := &Dao{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithContext returns a session bound to ctx
func (d *Dao) WithContext(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx)
}

// DB 返回底层 gorm.DB
func (d *Dao) DB() *gorm.DB {
	return d.db
}

// Logger 返回日志器
func (d *Dao) Logger() *zap.Logger {
	return d.logger
}

// NewDBEngineWithConfig opens the configured database and applies pool settings
// NewDBEngineWithConfig 根据配置打开数据库并设置连接池
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(c)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Silent
	if c.RunMode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", c.Type)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.ConnMaxLifetime != "" {
		if d, err := util.ParseDuration(c.ConnMaxLifetime); err == nil {
			sqlDB.SetConnMaxLifetime(d)
		} else if lg != nil {
			lg.Warn("invalid database.conn-max-lifetime", zap.String("value", c.ConnMaxLifetime), zap.Error(err))
		}
	}
	if c.ConnMaxIdleTime != "" {
		if d, err := util.ParseDuration(c.ConnMaxIdleTime); err == nil {
			sqlDB.SetConnMaxIdleTime(d)
		} else if lg != nil {
			lg.Warn("invalid database.conn-max-idle-time", zap.String("value", c.ConnMaxIdleTime), zap.Error(err))
		}
	}

	if c.Tracing {
		if err := db.Use(&gormTracing.OpentracingPlugin{}); err != nil {
			return nil, errors.Wrap(err, "register gorm tracing plugin")
		}
	}

	if c.AutoMigrate {
		if err := model.AutoMigrateAll(db); err != nil {
			return nil, errors.Wrap(err, "auto migrate")
		}
	}

	return db, nil
}

func dialectorFor(c DatabaseConfig) (gorm.Dialector, error) {
	switch c.Type {
	case "", "sqlite":
		if c.Path == "" {
			return nil, errors.New("database.path is required for sqlite")
		}
		if !strings.Contains(c.Path, ":memory:") && !strings.HasPrefix(c.Path, "file:") {
			if err := os.MkdirAll(filepath.Dir(c.Path), os.ModePerm); err != nil {
				return nil, errors.Wrap(err, "create sqlite dir")
			}
		}
		return sqlite.Open(c.Path), nil
	case "mysql":
		charset := c.Charset
		if charset == "" {
			charset = "utf8mb4"
		}
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName, c.Password, c.Host, c.Name, charset, c.ParseTime)), nil
	case "postgres":
		host, port, err := net.SplitHostPort(c.Host)
		if err != nil {
			host, port = c.Host, "5432"
		}
		return postgres.Open(fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=Local",
			host, port, c.UserName, c.Password, c.Name)), nil
	}
	return nil, errors.Errorf("unsupported database type %q", c.Type)
}
