package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/haierkeys/fast-note-history-service/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type memHistoryRepo struct {
	domain.HistoryRepository
	mu      sync.Mutex
	blobs   map[int64]domain.HistoryList
	getErr  error
	saveErr error
	saves   int
}

func newMemHistoryRepo(uids ...int64) *memHistoryRepo {
	r := &memHistoryRepo{blobs: map[int64]domain.HistoryList{}}
	for _, uid := range uids {
		r.blobs[uid] = domain.HistoryList{}
	}
	return r
}

func (r *memHistoryRepo) Get(ctx context.Context, uid int64) (domain.HistoryList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	list, ok := r.blobs[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if list == nil {
		return domain.HistoryList{}, nil
	}
	return list.Clone(), nil
}

func (r *memHistoryRepo) Save(ctx context.Context, uid int64, list domain.HistoryList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.blobs[uid]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.blobs[uid] = list.Clone()
	r.saves++
	return nil
}

func (r *memHistoryRepo) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

type memNoteRepo struct {
	domain.NoteRepository
	mu    sync.Mutex
	notes map[uuid.UUID]*domain.Note
}

func newMemNoteRepo() *memNoteRepo {
	return &memNoteRepo{notes: map[uuid.UUID]*domain.Note{}}
}

func cloneNote(n *domain.Note) *domain.Note {
	c := *n
	c.Tags = append([]string{}, n.Tags...)
	if n.ParentID != nil {
		p := *n.ParentID
		c.ParentID = &p
	}
	return &c
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// add stores a note directly, bypassing Create
func (r *memNoteRepo) add(n *domain.Note) *domain.Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	r.notes[n.ID] = cloneNote(n)
	return n
}

func (r *memNoteRepo) GetByID(ctx context.Context, id uuid.UUID, ownerID int64) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok || n.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneNote(n), nil
}

func (r *memNoteRepo) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	c := cloneNote(note)
	return r.add(c), nil
}

func (r *memNoteRepo) UpdateContent(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[note.ID]
	if !ok || n.OwnerID != note.OwnerID {
		return nil, gorm.ErrRecordNotFound
	}
	n.Title, n.Content, n.Tags, n.UpdatedAt = note.Title, note.Content, append([]string{}, note.Tags...), note.UpdatedAt
	return cloneNote(n), nil
}

func (r *memNoteRepo) UpdateParent(ctx context.Context, id uuid.UUID, ownerID int64, parentID *uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok || n.OwnerID != ownerID {
		return gorm.ErrRecordNotFound
	}
	n.ParentID = nil
	if parentID != nil {
		p := *parentID
		n.ParentID = &p
	}
	n.UpdatedAt = time.Now()
	return nil
}

func (r *memNoteRepo) Delete(ctx context.Context, id uuid.UUID, ownerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok || n.OwnerID != ownerID {
		return gorm.ErrRecordNotFound
	}
	delete(r.notes, id)
	return nil
}

func (r *memNoteRepo) List(ctx context.Context, ownerID int64, parentID *uuid.UUID, offset, limit int) ([]*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Note
	for _, n := range r.notes {
		if n.OwnerID == ownerID && sameParent(n.ParentID, parentID) {
			out = append(out, cloneNote(n))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	if limit > 0 {
		if offset >= len(out) {
			return []*domain.Note{}, nil
		}
		end := offset + limit
		if end > len(out) {
			end = len(out)
		}
		out = out[offset:end]
	}
	return out, nil
}

func (r *memNoteRepo) ListCount(ctx context.Context, ownerID int64, parentID *uuid.UUID) (int64, error) {
	notes, _ := r.List(ctx, ownerID, parentID, 0, 0)
	return int64(len(notes)), nil
}

func (r *memNoteRepo) Count(ctx context.Context, ownerID int64, id uuid.UUID, noteType *domain.NoteType) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok || n.OwnerID != ownerID || (noteType != nil && n.Type != *noteType) {
		return 0, nil
	}
	return 1, nil
}

type memUserRepo struct {
	domain.UserRepository
	mu     sync.Mutex
	users  map[int64]*domain.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]*domain.User{}}
}

func (r *memUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			c := *u
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.UID == uid })
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c := *user
	c.UID = r.nextID
	r.users[c.UID] = &c
	out := c
	return &out, nil
}

func (r *memUserRepo) GetAllUIDs(ctx context.Context) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	uids := make([]int64, 0, len(r.users))
	for uid := range r.users {
		uids = append(uids, uid)
	}
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })
	return uids, nil
}

func (r *memUserRepo) update(uid int64, fn func(*domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[uid]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	fn(u)
	return nil
}

func (r *memUserRepo) UpdatePassword(ctx context.Context, uid int64, passwordHash string) error {
	return r.update(uid, func(u *domain.User) { u.Password = passwordHash })
}

func (r *memUserRepo) UpdateAvatar(ctx context.Context, uid int64, avatar string) error {
	return r.update(uid, func(u *domain.User) { u.Avatar = avatar })
}
