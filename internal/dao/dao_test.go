package dao

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/fast-note-history-service/internal/domain"
	"github.com/haierkeys/fast-note-history-service/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()
	db, err := NewDBEngineWithConfig(DatabaseConfig{
		Type:         "sqlite",
		Path:         "file::memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		AutoMigrate:  true,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return New(db, WithLogger(zap.NewNop()))
}

func createUser(t *testing.T, d *Dao, name string) *domain.User {
	t.Helper()
	u, err := NewUserRepository(d).Create(context.Background(), &domain.User{
		Email:    name + "@example.com",
		Username: name,
		Password: "hash",
	})
	require.NoError(t, err)
	require.NotZero(t, u.UID)
	return u
}

func TestUserRepository(t *testing.T) {
	d := newTestDao(t)
	repo := NewUserRepository(d)
	ctx := context.Background()

	alice := createUser(t, d, "alice")
	bob := createUser(t, d, "bob")

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.UID, got.UID)

	got, err = repo.GetByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, bob.UID, got.UID)

	_, err = repo.GetByUID(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	uids, err := repo.GetAllUIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{alice.UID, bob.UID}, uids)

	require.NoError(t, repo.UpdatePassword(ctx, alice.UID, "new-hash"))
	require.NoError(t, repo.UpdateAvatar(ctx, alice.UID, "https://img.example.com/a.png"))
	got, err = repo.GetByUID(ctx, alice.UID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.Password)
	assert.Equal(t, "https://img.example.com/a.png", got.Avatar)

	assert.ErrorIs(t, repo.UpdatePassword(ctx, 9999, "x"), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.UpdateAvatar(ctx, 9999, "x"), gorm.ErrRecordNotFound)
}

func TestHistoryRepository(t *testing.T) {
	d := newTestDao(t)
	repo := NewHistoryRepository(d)
	ctx := context.Background()
	u := createUser(t, d, "alice")

	list, err := repo.Get(ctx, u.UID)
	require.NoError(t, err)
	assert.Empty(t, list)

	in := domain.HistoryList{
		{ID: "a", Text: "A", Time: 200, Tags: []string{"x"}, Pinned: true},
		{ID: "b", Text: "B", Time: 100},
	}
	require.NoError(t, repo.Save(ctx, u.UID, in))

	list, err = repo.Get(ctx, u.UID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.True(t, list[0].Pinned)
	assert.Equal(t, []string{"x"}, list[0].Tags)
	assert.Equal(t, []string{}, list[1].Tags)

	assert.ErrorIs(t, repo.Save(ctx, 9999, in), gorm.ErrRecordNotFound)
	_, err = repo.Get(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestHistoryRepository_LegacyBlob(t *testing.T) {
	d := newTestDao(t)
	repo := NewHistoryRepository(d)
	ctx := context.Background()
	u := createUser(t, d, "alice")

	raw := `[{"id":"x","text":"X","time":"123","tags":"a,b"},{"id":"y","time":5}]`
	require.NoError(t, d.DB().Model(&model.User{}).Where("uid = ?", u.UID).Update("history", raw).Error)

	list, err := repo.Get(ctx, u.UID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(123), list[0].Time)
	assert.Equal(t, []string{"a", "b"}, list[0].Tags)

	require.NoError(t, d.DB().Model(&model.User{}).Where("uid = ?", u.UID).Update("history", "").Error)
	list, err = repo.Get(ctx, u.UID)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, d.DB().Model(&model.User{}).Where("uid = ?", u.UID).Update("history", "{broken").Error)
	_, err = repo.Get(ctx, u.UID)
	assert.Error(t, err)
}

func TestNoteRepository(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()
	u := createUser(t, d, "alice")
	other := createUser(t, d, "bob")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	folder, err := repo.Create(ctx, &domain.Note{OwnerID: u.UID, Type: domain.NoteTypeFolder, Title: "F", UpdatedAt: base})
	require.NoError(t, err)

	older, err := repo.Create(ctx, &domain.Note{OwnerID: u.UID, ParentID: &folder.ID, Type: domain.NoteTypeDocument, Title: "old", Tags: []string{"t"}, UpdatedAt: base.Add(time.Hour)})
	require.NoError(t, err)
	newer, err := repo.Create(ctx, &domain.Note{OwnerID: u.UID, ParentID: &folder.ID, Type: domain.NoteTypeDocument, Title: "new", UpdatedAt: base.Add(2 * time.Hour)})
	require.NoError(t, err)

	notes, err := repo.List(ctx, u.UID, &folder.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, newer.ID, notes[0].ID)
	assert.Equal(t, older.ID, notes[1].ID)
	assert.Equal(t, []string{"t"}, notes[1].Tags)

	top, err := repo.List(ctx, u.UID, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, folder.ID, top[0].ID)

	n, err := repo.ListCount(ctx, u.UID, &folder.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	folderType := domain.NoteTypeFolder
	n, err = repo.Count(ctx, u.UID, folder.ID, &folderType)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = repo.Count(ctx, u.UID, older.ID, &folderType)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	n, err = repo.Count(ctx, other.UID, folder.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	_, err = repo.GetByID(ctx, older.ID, other.UID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	older.Content = "# Changed"
	older.Title = "Changed"
	older.Tags = nil
	updated, err := repo.UpdateContent(ctx, older)
	require.NoError(t, err)
	assert.Equal(t, "Changed", updated.Title)
	assert.Equal(t, []string{}, updated.Tags)

	require.NoError(t, repo.UpdateParent(ctx, older.ID, u.UID, nil))
	moved, err := repo.GetByID(ctx, older.ID, u.UID)
	require.NoError(t, err)
	assert.Nil(t, moved.ParentID)

	require.NoError(t, repo.Delete(ctx, older.ID, u.UID))
	assert.ErrorIs(t, repo.Delete(ctx, older.ID, u.UID), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.UpdateParent(ctx, uuid.New(), u.UID, nil), gorm.ErrRecordNotFound)
}
