package service

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/fast-note-history-service/internal/domain"
	"github.com/haierkeys/fast-note-history-service/internal/dto"
	"github.com/haierkeys/fast-note-history-service/pkg/app"
	"github.com/haierkeys/fast-note-history-service/pkg/code"
	"github.com/haierkeys/fast-note-history-service/pkg/noteid"
	"github.com/haierkeys/fast-note-history-service/pkg/workerpool"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type noteFixture struct {
	hr      *memHistoryRepo
	nr      *memNoteRepo
	history HistoryService
	notes   NoteService
	folders FolderService
}

func newNoteFixture(pool *workerpool.Pool) *noteFixture {
	f := &noteFixture{hr: newMemHistoryRepo(1, 2), nr: newMemNoteRepo()}
	f.history = NewHistoryService(f.hr, f.nr, nil, zap.NewNop())
	f.notes = NewNoteService(f.nr, f.history, pool, zap.NewNop(), &ServiceConfig{Note: NoteServiceConfig{HistoryUpsertTimeout: "5s"}})
	f.folders = NewFolderService(f.nr)
	return f
}

func TestNoteService_CreateRecordsHistory(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture(nil)

	note, err := f.notes.Create(ctx, 1, &dto.NoteCreateRequest{Content: "# Hello\nsome #work here"})
	require.NoError(t, err)
	assert.Equal(t, "Hello", note.Title)
	assert.Equal(t, []string{"work"}, note.Tags)
	assert.Equal(t, string(domain.NoteTypeDocument), note.Type)
	assert.Equal(t, "", note.ParentID)
	assert.Len(t, note.ID, noteid.EncodedLength)

	list, err := f.history.Get(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, note.ID, list[0].ID)
	assert.Equal(t, "Hello", list[0].Text)
	assert.Equal(t, note.UpdatedAt.Time().UnixMilli(), list[0].Time)

	titled, err := f.notes.Create(ctx, 1, &dto.NoteCreateRequest{Content: "# Parsed", Title: "Given"})
	require.NoError(t, err)
	assert.Equal(t, "Given", titled.Title)
}

func TestNoteService_CreateInFolder(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture(nil)

	folder, err := f.folders.Create(ctx, 1, &dto.FolderCreateRequest{Title: "F"})
	require.NoError(t, err)

	note, err := f.notes.Create(ctx, 1, &dto.NoteCreateRequest{Content: "x", ParentID: folder.ID})
	require.NoError(t, err)
	assert.Equal(t, folder.ID, note.ParentID)

	_, err = f.notes.Create(ctx, 1, &dto.NoteCreateRequest{Content: "x", ParentID: note.ID})
	assert.ErrorIs(t, err, code.ErrorFolderNotFound)
	_, err = f.notes.Create(ctx, 2, &dto.NoteCreateRequest{Content: "x", ParentID: folder.ID})
	assert.ErrorIs(t, err, code.ErrorFolderNotFound)
}

func TestNoteService_GetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture(nil)

	note, err := f.notes.Create(ctx, 1, &dto.NoteCreateRequest{Content: "# One"})
	require.NoError(t, err)

	got, err := f.notes.Get(ctx, 1, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "# One", got.Content)

	_, err = f.notes.Get(ctx, 2, note.ID)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
	_, err = f.notes.Get(ctx, 1, "bogus")
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)

	updated, err := f.notes.Update(ctx, 1, note.ID, &dto.NoteUpdateRequest{Content: "# Two\n#fresh"})
	require.NoError(t, err)
	assert.Equal(t, "Two", updated.Title)
	assert.Equal(t, []string{"fresh"}, updated.Tags)

	list, err := f.history.Get(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Two", list[0].Text)
	assert.Equal(t, []string{"fresh"}, list[0].Tags)

	folder, err := f.folders.Create(ctx, 1, &dto.FolderCreateRequest{Title: "F"})
	require.NoError(t, err)
	_, err = f.notes.Update(ctx, 1, folder.ID, &dto.NoteUpdateRequest{Content: "x"})
	assert.ErrorIs(t, err, code.ErrorNoteTypeMismatch)
	assert.ErrorIs(t, f.notes.Delete(ctx, 1, folder.ID), code.ErrorNoteTypeMismatch)

	require.NoError(t, f.notes.Delete(ctx, 1, note.ID))
	list, err = f.history.Get(ctx, 1, "")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.ErrorIs(t, f.notes.Delete(ctx, 1, note.ID), code.ErrorNoteNotFound)
}

func TestNoteService_List(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture(nil)

	base := time.Now().Add(-time.Hour)
	folder := f.nr.add(&domain.Note{OwnerID: 1, Type: domain.NoteTypeFolder, Title: "F", UpdatedAt: base})
	for i := 0; i < 5; i++ {
		f.nr.add(&domain.Note{OwnerID: 1, ParentID: &folder.ID, Type: domain.NoteTypeDocument, UpdatedAt: base.Add(time.Duration(i) * time.Minute)})
	}

	items, total, err := f.notes.List(ctx, 1, noteid.Encode(folder.ID), &app.Pager{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, items, 2)
	assert.True(t, items[0].UpdatedAt.Time().After(items[1].UpdatedAt.Time()))

	items, total, err = f.notes.List(ctx, 1, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, noteid.Encode(folder.ID), items[0].ID)

	_, _, err = f.notes.List(ctx, 1, noteid.Encode(uuid.New()), nil)
	assert.ErrorIs(t, err, code.ErrorFolderNotFound)
}

func TestNoteService_Move(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture(nil)

	a, _ := f.folders.Create(ctx, 1, &dto.FolderCreateRequest{Title: "A"})
	b, _ := f.folders.Create(ctx, 1, &dto.FolderCreateRequest{Title: "B", ParentID: a.ID})
	c, _ := f.folders.Create(ctx, 1, &dto.FolderCreateRequest{Title: "C", ParentID: b.ID})
	doc, _ := f.notes.Create(ctx, 1, &dto.NoteCreateRequest{Content: "d"})
	foreign, _ := f.folders.Create(ctx, 2, &dto.FolderCreateRequest{Title: "X"})

	moved, err := f.notes.Move(ctx, 1, doc.ID, &dto.NoteMoveRequest{ParentID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, c.ID, moved.ParentID)

	moved, err = f.notes.Move(ctx, 1, doc.ID, &dto.NoteMoveRequest{})
	require.NoError(t, err)
	assert.Equal(t, "", moved.ParentID)

	tests := []struct {
		name   string
		note   string
		target string
		want   *code.Code
	}{
		{"into a document", a.ID, doc.ID, code.ErrorNoteMoveInvalid},
		{"into itself", a.ID, a.ID, code.ErrorNoteMoveInvalid},
		{"into a descendant", a.ID, c.ID, code.ErrorNoteMoveInvalid},
		{"into a foreign folder", doc.ID, foreign.ID, code.ErrorFolderNotFound},
		{"missing target", doc.ID, noteid.Encode(uuid.New()), code.ErrorFolderNotFound},
		{"missing note", noteid.Encode(uuid.New()), a.ID, code.ErrorNoteNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.notes.Move(ctx, 1, tt.note, &dto.NoteMoveRequest{ParentID: tt.target})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	moved, err = f.notes.Move(ctx, 1, c.ID, &dto.NoteMoveRequest{ParentID: a.ID})
	require.NoError(t, err)
	assert.Equal(t, a.ID, moved.ParentID)
}

func TestNoteService_AsyncHistoryThroughPool(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := workerpool.New(&workerpool.Config{MaxWorkers: 2, QueueSize: 16}, zap.NewNop())
	f := newNoteFixture(pool)

	note, err := f.notes.Create(ctx, 1, &dto.NoteCreateRequest{Content: "# Async"})
	require.NoError(t, err)
	// the request ending must not cancel the queued update
	cancel()

	require.NoError(t, pool.Shutdown(context.Background()))
	list, err := f.history.Get(context.Background(), 1, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, note.ID, list[0].ID)
}
