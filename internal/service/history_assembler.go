package service

import (
	"context"
	"errors"
	"strings"

	"github.com/haierkeys/fast-note-history-service/internal/domain"
	"github.com/haierkeys/fast-note-history-service/pkg/code"
	"github.com/haierkeys/fast-note-history-service/pkg/logger"
	"github.com/haierkeys/fast-note-history-service/pkg/lzstring"
	"github.com/haierkeys/fast-note-history-service/pkg/noteid"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

// HistoryMigrator rewrites legacy compressed ids to the canonical encoding.
// Each entry is handled on its own; a failure never aborts the pass.
// HistoryMigrator 将旧的压缩 ID 迁移为标准编码
type HistoryMigrator struct {
	logger *zap.Logger
}

// NewHistoryMigrator 创建 HistoryMigrator
func NewHistoryMigrator(lg *zap.Logger) *HistoryMigrator {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &HistoryMigrator{logger: lg}
}

// Migrate returns a migrated copy of list and the number of rewritten ids.
// Entries already in canonical form are left as they are, so the pass is idempotent.
func (m *HistoryMigrator) Migrate(ctx context.Context, uid int64, list domain.HistoryList) (domain.HistoryList, int) {
	out := make(domain.HistoryList, 0, len(list))
	migrated := 0
	for _, e := range list {
		if e == nil {
			continue
		}
		c := e.Clone()
		ok, err := m.migrateEntry(c)
		switch {
		case ok:
			migrated++
			historyMigratedIDs.WithLabelValues(migrateResultMigrated).Inc()
			out = append(out, c)
			continue
		case err == nil:
		case errors.Is(err, lzstring.ErrMalformed):
			historyMigratedIDs.WithLabelValues(migrateResultMalformed).Inc()
			m.logger.Warn("legacy history id could not be decompressed",
				zap.Int64(logger.FieldUID, uid),
				zap.String(logger.FieldNoteID, e.ID),
				zap.Error(err))
		default:
			historyMigratedIDs.WithLabelValues(migrateResultError).Inc()
			m.logger.Error("legacy history id migration failed",
				zap.Int64(logger.FieldUID, uid),
				zap.String(logger.FieldNoteID, e.ID),
				zap.Error(err))
		}
		// unchanged
		out = append(out, e.Clone())
	}
	return out, migrated
}

func (m *HistoryMigrator) migrateEntry(e *domain.HistoryEntry) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, pkgerrors.Errorf("panic while migrating id: %v", r)
		}
	}()

	if !noteid.LooksLegacyEncoded(e.ID) {
		return false, nil
	}
	raw, err := lzstring.DecompressFromBase64(e.ID)
	if err != nil {
		return false, err
	}
	if raw == "" || !noteid.IsValid(raw) {
		historyMigratedIDs.WithLabelValues(migrateResultInvalid).Inc()
		m.logger.Warn("legacy history id does not decode to a note id",
			zap.String(logger.FieldNoteID, e.ID))
		return false, nil
	}
	id, err := noteid.EncodeString(raw)
	if err != nil {
		return false, err
	}
	e.ID = id
	e.Tags = normalizeTags(e.Tags)
	return true, nil
}

// normalizeTags trims, drops empties and duplicates, keeps order, never returns nil
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// historyAssembler builds a user's history collection from the stored blob,
// optionally narrowed to the documents of one folder.
type historyAssembler struct {
	historyRepo domain.HistoryRepository
	noteRepo    domain.NoteRepository
	migrator    *HistoryMigrator
}

// load reads the stored blob and migrates legacy ids in memory.
// Repository errors are returned unchanged.
func (a *historyAssembler) load(ctx context.Context, uid int64) (domain.HistoryMap, int, error) {
	stored, err := a.historyRepo.Get(ctx, uid)
	if err != nil {
		return nil, 0, err
	}
	list, n := a.migrator.Migrate(ctx, uid, stored)
	return list.ToMap(), n, nil
}

// assemble returns the keyed collection for uid. With a parent, entries are built from
// the live documents of that folder and take pinned and any newer time from the blob.
func (a *historyAssembler) assemble(ctx context.Context, uid int64, parent string) (domain.HistoryMap, error) {
	stored, _, err := a.load(ctx, uid)
	if err != nil {
		return nil, err
	}
	if parent == "" {
		return stored, nil
	}

	parentID, ok := decodeNoteID(parent)
	if !ok {
		return nil, code.ErrorFolderNotFound
	}
	folderType := domain.NoteTypeFolder
	n, err := a.noteRepo.Count(ctx, uid, parentID, &folderType)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, code.ErrorFolderNotFound
	}

	notes, err := a.noteRepo.List(ctx, uid, &parentID, 0, 0)
	if err != nil {
		return nil, err
	}
	scoped := make(domain.HistoryMap, len(notes))
	for _, note := range notes {
		if note.IsFolder() {
			continue
		}
		e := entryFromNote(note)
		if s, ok := stored[e.ID]; ok {
			e.Pinned = s.Pinned
			if s.Time > e.Time {
				e.Time = s.Time
			}
		}
		scoped[e.ID] = e
	}
	return scoped, nil
}

func entryFromNote(note *domain.Note) *domain.HistoryEntry {
	return &domain.HistoryEntry{
		ID:   noteid.Encode(note.ID),
		Text: note.Title,
		Time: note.UpdatedAt.UnixMilli(),
		Tags: normalizeTags(note.Tags),
	}
}

// decodeNoteID accepts the encoded form or a dashed uuid
func decodeNoteID(s string) (uuid.UUID, bool) {
	if id, err := noteid.Decode(s); err == nil {
		return id, true
	}
	if noteid.IsValid(s) {
		if id, err := uuid.Parse(s); err == nil {
			return id, true
		}
	}
	return uuid.Nil, false
}
