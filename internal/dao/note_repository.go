package dao

import (
	"context"
	"time"

	"github.com/haierkeys/fast-note-history-service/internal/domain"
	"github.com/haierkeys/fast-note-history-service/internal/model"
	"github.com/haierkeys/fast-note-history-service/pkg/timex"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

func (r *noteRepository) toDomain(m *model.Note) (*domain.Note, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	n := &domain.Note{
		ID:        id,
		OwnerID:   m.OwnerID,
		Type:      domain.NoteType(m.Type),
		Title:     m.Title,
		Content:   m.Content,
		Tags:      m.Tags,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	if m.ParentID != nil {
		pid, err := uuid.Parse(*m.ParentID)
		if err != nil {
			return nil, err
		}
		n.ParentID = &pid
	}
	return n, nil
}

func (r *noteRepository) toModel(n *domain.Note) *model.Note {
	return &model.Note{
		ID:        n.ID.String(),
		OwnerID:   n.OwnerID,
		ParentID:  parentString(n.ParentID),
		Type:      string(n.Type),
		Title:     n.Title,
		Content:   n.Content,
		Tags:      n.Tags,
		CreatedAt: timex.Time(n.CreatedAt),
		UpdatedAt: timex.Time(n.UpdatedAt),
	}
}

func parentString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// scopeParent filters by parent folder; nil selects top level notes
func scopeParent(parentID *uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if parentID == nil {
			return db.Where("parent_id IS NULL")
		}
		return db.Where("parent_id = ?", parentID.String())
	}
}

// GetByID 根据ID获取笔记
func (r *noteRepository) GetByID(ctx context.Context, id uuid.UUID, ownerID int64) (*domain.Note, error) {
	var m model.Note
	err := r.dao.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id.String(), ownerID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m)
}

// Create 创建笔记
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := r.toModel(note)
	if m.ID == uuid.Nil.String() {
		m.ID = uuid.NewString()
	}
	now := timex.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = now
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}
	if err := r.dao.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m)
}

// UpdateContent 更新笔记内容
func (r *noteRepository) UpdateContent(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	updated := timex.Time(note.UpdatedAt)
	if updated.IsZero() {
		updated = timex.Now()
	}
	res := r.dao.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ? AND owner_id = ?", note.ID.String(), note.OwnerID).
		Select("title", "content", "tags", "updated_at").
		Updates(&model.Note{
			Title:     note.Title,
			Content:   note.Content,
			Tags:      tags,
			UpdatedAt: updated,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, note.ID, note.OwnerID)
}

// UpdateParent 移动笔记
func (r *noteRepository) UpdateParent(ctx context.Context, id uuid.UUID, ownerID int64, parentID *uuid.UUID) error {
	res := r.dao.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ? AND owner_id = ?", id.String(), ownerID).
		Updates(map[string]interface{}{
			"parent_id":  parentString(parentID),
			"updated_at": timex.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除笔记
func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID, ownerID int64) error {
	res := r.dao.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id.String(), ownerID).
		Delete(&model.Note{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List 列出父文件夹下的笔记，按更新时间倒序；limit <= 0 表示不分页
func (r *noteRepository) List(ctx context.Context, ownerID int64, parentID *uuid.UUID, offset, limit int) ([]*domain.Note, error) {
	var ms []*model.Note
	q := r.dao.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Scopes(scopeParent(parentID)).
		Order("updated_at DESC").
		Order("id")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		n, err := r.toDomain(m)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// ListCount 父文件夹下的笔记数量
func (r *noteRepository) ListCount(ctx context.Context, ownerID int64, parentID *uuid.UUID) (int64, error) {
	var n int64
	err := r.dao.WithContext(ctx).
		Model(&model.Note{}).
		Where("owner_id = ?", ownerID).
		Scopes(scopeParent(parentID)).
		Count(&n).Error
	return n, err
}

// Count 按 ID（可选类型）统计笔记数量
func (r *noteRepository) Count(ctx context.Context, ownerID int64, id uuid.UUID, noteType *domain.NoteType) (int64, error) {
	var n int64
	q := r.dao.WithContext(ctx).
		Model(&model.Note{}).
		Where("owner_id = ? AND id = ?", ownerID, id.String())
	if noteType != nil {
		q = q.Where("type = ?", string(*noteType))
	}
	err := q.Count(&n).Error
	return n, err
}

var _ domain.NoteRepository = (*noteRepository)(nil)
