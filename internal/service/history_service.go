package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/haierkeys/fast-note-history-service/internal/domain"
	"github.com/haierkeys/fast-note-history-service/pkg/code"
	"github.com/haierkeys/fast-note-history-service/pkg/logger"
	"github.com/haierkeys/fast-note-history-service/pkg/util"
	"github.com/haierkeys/fast-note-history-service/pkg/writequeue"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// HistoryService 定义历史记录业务服务接口
type HistoryService interface {
	// Get returns the user's history, newest first; parent narrows it to one folder
	// Get 获取历史记录
	Get(ctx context.Context, uid int64, parent string) (domain.HistoryList, error)

	// ReplaceAll overwrites the stored history unconditionally
	// ReplaceAll 整体替换历史记录
	ReplaceAll(ctx context.Context, uid int64, list domain.HistoryList) error

	// UpsertOnAccess records an access to a note. It never fails; problems are logged.
	// UpsertOnAccess 记录一次笔记访问
	UpsertOnAccess(ctx context.Context, uid int64, noteID string, document *string, at int64)

	// SetPinned sets the pinned flag from a "true"/"false" token
	// SetPinned 设置置顶
	SetPinned(ctx context.Context, uid int64, noteID string, token string) error

	// DeleteOne 删除一条历史记录
	DeleteOne(ctx context.Context, uid int64, noteID string) error

	// DeleteAll 清空历史记录
	DeleteAll(ctx context.Context, uid int64) error

	// MigrateStored persists the legacy id migration of the stored blob and returns the number of rewritten ids
	// MigrateStored 持久化旧 ID 迁移结果
	MigrateStored(ctx context.Context, uid int64) (int, error)
}

type historyService struct {
	historyRepo domain.HistoryRepository
	assembler   *historyAssembler
	writeQueue  *writequeue.Manager // nil: last write wins
	logger      *zap.Logger
	sf          singleflight.Group
}

// NewHistoryService 创建 HistoryService 实例
// With a non-nil wq every mutation of one user runs through that user's FIFO lane.
func NewHistoryService(historyRepo domain.HistoryRepository, noteRepo domain.NoteRepository, wq *writequeue.Manager, lg *zap.Logger) HistoryService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &historyService{
		historyRepo: historyRepo,
		assembler: &historyAssembler{
			historyRepo: historyRepo,
			noteRepo:    noteRepo,
			migrator:    NewHistoryMigrator(lg),
		},
		writeQueue: wq,
		logger:     lg,
	}
}

// storeError maps a repository error to a response code
func (s *historyService) storeError(uid int64, method string, err error) error {
	var c *code.Code
	if errors.As(err, &c) {
		return c
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return code.ErrorUserNotFound
	}
	s.logger.Error("history storage failed",
		zap.Int64(logger.FieldUID, uid),
		zap.String(logger.FieldMethod, method),
		zap.Error(err))
	return code.ErrorDBQuery.WithDetails(err.Error())
}

// serialize runs fn directly, or on the user's write lane when serialization is enabled
func (s *historyService) serialize(ctx context.Context, uid int64, fn func() error) error {
	if s.writeQueue == nil {
		return fn()
	}
	err := s.writeQueue.Execute(ctx, uid, fn)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, writequeue.ErrWriteQueueFull):
		return code.ErrorTooManyRequests
	case errors.Is(err, writequeue.ErrWriteTimeout), errors.Is(err, context.DeadlineExceeded):
		return code.ErrorRequestTimeout
	case errors.Is(err, writequeue.ErrWriteQueueClosed):
		return code.ErrorServerInternal.WithDetails(err.Error())
	}
	return err
}

func (s *historyService) save(ctx context.Context, uid int64, op string, list domain.HistoryList) error {
	if err := s.historyRepo.Save(ctx, uid, list); err != nil {
		return s.storeError(uid, "HistoryService."+op, err)
	}
	historyMutations.WithLabelValues(op).Inc()
	return nil
}

func (s *historyService) Get(ctx context.Context, uid int64, parent string) (domain.HistoryList, error) {
	key := strconv.FormatInt(uid, 10) + ":" + parent
	// the shared flight is not bound to any single caller's cancellation
	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		m, err := s.assembler.assemble(flightCtx, uid, parent)
		if err != nil {
			return nil, s.storeError(uid, "HistoryService.Get", err)
		}
		return m.ToList(), nil
	})
	if err != nil {
		return nil, err
	}
	// callers sharing one flight must not share entries
	return v.(domain.HistoryList).Clone(), nil
}

func (s *historyService) ReplaceAll(ctx context.Context, uid int64, list domain.HistoryList) error {
	return s.serialize(ctx, uid, func() error {
		out := make(domain.HistoryList, 0, len(list))
		for _, e := range list {
			if e != nil {
				out = append(out, e)
			}
		}
		return s.save(ctx, uid, "replace_all", out)
	})
}

func (s *historyService) UpsertOnAccess(ctx context.Context, uid int64, noteID string, document *string, at int64) {
	if uid == 0 || noteID == "" || document == nil {
		return
	}
	if at == 0 {
		at = time.Now().UnixMilli()
	}

	err := s.serialize(ctx, uid, func() error {
		m, _, err := s.assembler.load(ctx, uid)
		if err != nil {
			return s.storeError(uid, "HistoryService.UpsertOnAccess", err)
		}
		e, ok := m[noteID]
		if !ok {
			e = &domain.HistoryEntry{ID: noteID, Tags: []string{}}
			m[noteID] = e
		}
		info := util.ParseNoteInfo(*document)
		e.Text = info.Title
		e.Tags = info.Tags
		e.Time = at
		return s.save(ctx, uid, "upsert", m.ToList())
	})
	if err != nil {
		s.logger.Warn("history upsert skipped",
			zap.Int64(logger.FieldUID, uid),
			zap.String(logger.FieldNoteID, noteID),
			zap.Error(err))
	}
}

// parsePinned accepts only the literal tokens "true" and "false"
func parsePinned(token string) (bool, bool) {
	switch token {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// SetPinned reports a missing user or entry before an invalid token
func (s *historyService) SetPinned(ctx context.Context, uid int64, noteID string, token string) error {
	return s.serialize(ctx, uid, func() error {
		m, _, err := s.assembler.load(ctx, uid)
		if err != nil {
			return s.storeError(uid, "HistoryService.SetPinned", err)
		}
		e, ok := m[noteID]
		if !ok {
			return code.ErrorHistoryNotFound
		}
		pinned, ok := parsePinned(token)
		if !ok {
			return code.ErrorHistoryPinnedValue
		}
		e.Pinned = pinned
		return s.save(ctx, uid, "set_pinned", m.ToList())
	})
}

func (s *historyService) DeleteOne(ctx context.Context, uid int64, noteID string) error {
	return s.serialize(ctx, uid, func() error {
		m, _, err := s.assembler.load(ctx, uid)
		if err != nil {
			return s.storeError(uid, "HistoryService.DeleteOne", err)
		}
		if _, ok := m[noteID]; !ok {
			return code.ErrorHistoryNotFound
		}
		delete(m, noteID)
		return s.save(ctx, uid, "delete_one", m.ToList())
	})
}

func (s *historyService) DeleteAll(ctx context.Context, uid int64) error {
	return s.serialize(ctx, uid, func() error {
		return s.save(ctx, uid, "delete_all", domain.HistoryList{})
	})
}

func (s *historyService) MigrateStored(ctx context.Context, uid int64) (int, error) {
	var migrated int
	err := s.serialize(ctx, uid, func() error {
		m, n, err := s.assembler.load(ctx, uid)
		if err != nil {
			return s.storeError(uid, "HistoryService.MigrateStored", err)
		}
		migrated = n
		if n == 0 {
			return nil
		}
		return s.save(ctx, uid, "migrate", m.ToList())
	})
	return migrated, err
}

var _ HistoryService = (*historyService)(nil)
