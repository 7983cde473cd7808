package service

import (
	"context"
	"errors"
	"time"

	"github.com/haierkeys/fast-note-history-service/internal/domain"
	"github.com/haierkeys/fast-note-history-service/internal/dto"
	"github.com/haierkeys/fast-note-history-service/pkg/app"
	"github.com/haierkeys/fast-note-history-service/pkg/code"
	"github.com/haierkeys/fast-note-history-service/pkg/logger"
	"github.com/haierkeys/fast-note-history-service/pkg/noteid"
	"github.com/haierkeys/fast-note-history-service/pkg/timex"
	"github.com/haierkeys/fast-note-history-service/pkg/util"
	"github.com/haierkeys/fast-note-history-service/pkg/workerpool"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NoteService 笔记业务服务接口
type NoteService interface {
	Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error)
	Get(ctx context.Context, uid int64, noteID string) (*dto.NoteDTO, error)
	Update(ctx context.Context, uid int64, noteID string, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error)
	Delete(ctx context.Context, uid int64, noteID string) error
	List(ctx context.Context, uid int64, parent string, pager *app.Pager) ([]*dto.NoteNoContentDTO, int, error)
	Move(ctx context.Context, uid int64, noteID string, params *dto.NoteMoveRequest) (*dto.NoteDTO, error)
}

type noteService struct {
	noteRepo      domain.NoteRepository
	history       HistoryService
	pool          *workerpool.Pool // nil: history updates run inline
	logger        *zap.Logger
	upsertTimeout time.Duration
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository, history HistoryService, pool *workerpool.Pool, lg *zap.Logger, config *ServiceConfig) NoteService {
	if lg == nil {
		lg = zap.NewNop()
	}
	s := &noteService{
		noteRepo: noteRepo,
		history:  history,
		pool:     pool,
		logger:   lg,
	}
	if config != nil && config.Note.HistoryUpsertTimeout != "" {
		if d, err := util.ParseDuration(config.Note.HistoryUpsertTimeout); err == nil {
			s.upsertTimeout = d
		}
	}
	return s
}

func noteToDTO(n *domain.Note) *dto.NoteDTO {
	if n == nil {
		return nil
	}
	return &dto.NoteDTO{
		ID:        noteid.Encode(n.ID),
		ParentID:  encodeParent(n.ParentID),
		Type:      string(n.Type),
		Title:     n.Title,
		Content:   n.Content,
		Tags:      nonNilTags(n.Tags),
		UpdatedAt: timex.Time(n.UpdatedAt),
		CreatedAt: timex.Time(n.CreatedAt),
	}
}

func noteToNoContentDTO(n *domain.Note) *dto.NoteNoContentDTO {
	return &dto.NoteNoContentDTO{
		ID:        noteid.Encode(n.ID),
		ParentID:  encodeParent(n.ParentID),
		Type:      string(n.Type),
		Title:     n.Title,
		Tags:      nonNilTags(n.Tags),
		UpdatedAt: timex.Time(n.UpdatedAt),
		CreatedAt: timex.Time(n.CreatedAt),
	}
}

func encodeParent(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return noteid.Encode(*id)
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// recordAccess hands the history update to the worker pool.
// The update outlives the request, so it keeps the values of ctx but not its cancellation.
func (s *noteService) recordAccess(ctx context.Context, uid int64, note *domain.Note, at int64) {
	if s.history == nil || note.IsFolder() {
		return
	}
	noteID := noteid.Encode(note.ID)
	content := note.Content

	task := func(ctx context.Context) error {
		if s.upsertTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.upsertTimeout)
			defer cancel()
		}
		s.history.UpsertOnAccess(ctx, uid, noteID, &content, at)
		return nil
	}

	bg := context.WithoutCancel(ctx)
	if s.pool == nil {
		_ = task(bg)
		return
	}
	if err := s.pool.SubmitAsync(bg, task); err != nil {
		s.logger.Warn("history update dropped",
			zap.Int64(logger.FieldUID, uid),
			zap.String(logger.FieldNoteID, noteID),
			zap.Error(err))
	}
}

// lookup finds a note of uid by its encoded id
func (s *noteService) lookup(ctx context.Context, uid int64, noteID string) (*domain.Note, error) {
	id, ok := decodeNoteID(noteID)
	if !ok {
		return nil, code.ErrorNoteNotFound
	}
	note, err := s.noteRepo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return note, nil
}

// resolveFolder returns nil for the top level, or the id of an existing folder of uid
func resolveFolder(ctx context.Context, repo domain.NoteRepository, uid int64, folderID string) (*uuid.UUID, error) {
	if folderID == "" {
		return nil, nil
	}
	id, ok := decodeNoteID(folderID)
	if !ok {
		return nil, code.ErrorFolderNotFound
	}
	folderType := domain.NoteTypeFolder
	n, err := repo.Count(ctx, uid, id, &folderType)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if n == 0 {
		return nil, code.ErrorFolderNotFound
	}
	return &id, nil
}

func (s *noteService) Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error) {
	parentID, err := resolveFolder(ctx, s.noteRepo, uid, params.ParentID)
	if err != nil {
		return nil, err
	}

	info := util.ParseNoteInfo(params.Content)
	title := params.Title
	if title == "" {
		title = info.Title
	}
	now := time.Now()
	note, err := s.noteRepo.Create(ctx, &domain.Note{
		OwnerID:   uid,
		ParentID:  parentID,
		Type:      domain.NoteTypeDocument,
		Title:     title,
		Content:   params.Content,
		Tags:      info.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	s.recordAccess(ctx, uid, note, note.UpdatedAt.UnixMilli())
	return noteToDTO(note), nil
}

func (s *noteService) Get(ctx context.Context, uid int64, noteID string) (*dto.NoteDTO, error) {
	note, err := s.lookup(ctx, uid, noteID)
	if err != nil {
		return nil, err
	}
	s.recordAccess(ctx, uid, note, 0)
	return noteToDTO(note), nil
}

func (s *noteService) Update(ctx context.Context, uid int64, noteID string, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error) {
	note, err := s.lookup(ctx, uid, noteID)
	if err != nil {
		return nil, err
	}
	if note.IsFolder() {
		return nil, code.ErrorNoteTypeMismatch
	}

	info := util.ParseNoteInfo(params.Content)
	note.Content = params.Content
	note.Title = params.Title
	if note.Title == "" {
		note.Title = info.Title
	}
	note.Tags = info.Tags
	note.UpdatedAt = time.Now()

	updated, err := s.noteRepo.UpdateContent(ctx, note)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	s.recordAccess(ctx, uid, updated, updated.UpdatedAt.UnixMilli())
	return noteToDTO(updated), nil
}

func (s *noteService) Delete(ctx context.Context, uid int64, noteID string) error {
	note, err := s.lookup(ctx, uid, noteID)
	if err != nil {
		return err
	}
	if note.IsFolder() {
		return code.ErrorNoteTypeMismatch
	}
	if err := s.noteRepo.Delete(ctx, note.ID, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorNoteNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	if s.history != nil {
		err := s.history.DeleteOne(ctx, uid, noteid.Encode(note.ID))
		if err != nil && !errors.Is(err, code.ErrorHistoryNotFound) {
			s.logger.Warn("remove history entry of deleted note failed",
				zap.Int64(logger.FieldUID, uid),
				zap.String(logger.FieldNoteID, noteid.Encode(note.ID)),
				zap.Error(err))
		}
	}
	return nil
}

func (s *noteService) List(ctx context.Context, uid int64, parent string, pager *app.Pager) ([]*dto.NoteNoContentDTO, int, error) {
	parentID, err := resolveFolder(ctx, s.noteRepo, uid, parent)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.noteRepo.ListCount(ctx, uid, parentID)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	offset, limit := 0, 0
	if pager != nil {
		offset, limit = app.GetPageOffset(pager.Page, pager.PageSize), pager.PageSize
	}
	notes, err := s.noteRepo.List(ctx, uid, parentID, offset, limit)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	out := make([]*dto.NoteNoContentDTO, 0, len(notes))
	for _, n := range notes {
		out = append(out, noteToNoContentDTO(n))
	}
	return out, int(count), nil
}

// Move attaches a note to another folder or to the top level.
// A folder cannot be moved into itself or below itself.
func (s *noteService) Move(ctx context.Context, uid int64, noteID string, params *dto.NoteMoveRequest) (*dto.NoteDTO, error) {
	note, err := s.lookup(ctx, uid, noteID)
	if err != nil {
		return nil, err
	}

	var target *uuid.UUID
	if params.ParentID != "" {
		folder, err := s.lookup(ctx, uid, params.ParentID)
		if err != nil {
			if errors.Is(err, code.ErrorNoteNotFound) {
				return nil, code.ErrorFolderNotFound
			}
			return nil, err
		}
		if !folder.IsFolder() {
			return nil, code.ErrorNoteMoveInvalid
		}
		if note.IsFolder() {
			if err := s.checkNotDescendant(ctx, uid, note.ID, folder); err != nil {
				return nil, err
			}
		}
		target = &folder.ID
	}

	if err := s.noteRepo.UpdateParent(ctx, note.ID, uid, target); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	moved, err := s.noteRepo.GetByID(ctx, note.ID, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return noteToDTO(moved), nil
}

// checkNotDescendant walks up from target and fails when it reaches id
func (s *noteService) checkNotDescendant(ctx context.Context, uid int64, id uuid.UUID, target *domain.Note) error {
	seen := map[uuid.UUID]struct{}{}
	for cur := target; cur != nil; {
		if cur.ID == id {
			return code.ErrorNoteMoveInvalid
		}
		if _, ok := seen[cur.ID]; ok || cur.ParentID == nil {
			return nil
		}
		seen[cur.ID] = struct{}{}

		parent, err := s.noteRepo.GetByID(ctx, *cur.ParentID, uid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return code.ErrorDBQuery.WithDetails(err.Error())
		}
		cur = parent
	}
	return nil
}

var _ NoteService = (*noteService)(nil)
