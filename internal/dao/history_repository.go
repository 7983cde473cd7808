package dao

import (
	"context"
	"strings"

	"github.com/haierkeys/fast-note-history-service/internal/domain"
	"github.com/haierkeys/fast-note-history-service/internal/model"
	"github.com/haierkeys/fast-note-history-service/pkg/code"
	"github.com/haierkeys/fast-note-history-service/pkg/timex"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// historyRepository stores the history list as JSON in user.history
// historyRepository 将历史记录以 JSON 形式保存在 user.history 字段
type historyRepository struct {
	dao *Dao
}

// NewHistoryRepository 创建 HistoryRepository 实例
func NewHistoryRepository(dao *Dao) domain.HistoryRepository {
	return &historyRepository{dao: dao}
}

func (r *historyRepository) toDomain(items []model.HistoryItem) domain.HistoryList {
	list := make(domain.HistoryList, 0, len(items))
	for _, it := range items {
		list = append(list, &domain.HistoryEntry{
			ID:     it.ID,
			Text:   it.Text,
			Time:   int64(it.Time),
			Tags:   []string(it.Tags),
			Pinned: it.Pinned,
		})
	}
	return list
}

func (r *historyRepository) toModel(list domain.HistoryList) []model.HistoryItem {
	items := make([]model.HistoryItem, 0, len(list))
	for _, e := range list {
		if e == nil {
			continue
		}
		tags := model.TagList(e.Tags)
		if tags == nil {
			tags = model.TagList{}
		}
		items = append(items, model.HistoryItem{
			ID:     e.ID,
			Text:   e.Text,
			Time:   model.Millis(e.Time),
			Tags:   tags,
			Pinned: e.Pinned,
		})
	}
	return items
}

// Get 读取用户历史记录
func (r *historyRepository) Get(ctx context.Context, uid int64) (domain.HistoryList, error) {
	var m model.User
	err := r.dao.WithContext(ctx).
		Select("uid", "history").
		Where("uid = ? AND is_deleted = ?", uid, 0).
		First(&m).Error
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(m.History) == "" {
		return domain.HistoryList{}, nil
	}
	var items []model.HistoryItem
	if err := sonic.UnmarshalString(m.History, &items); err != nil {
		return nil, errors.Wrapf(err, "decode history of user %d", uid)
	}
	return r.toDomain(items), nil
}

// Save 覆盖保存用户历史记录
func (r *historyRepository) Save(ctx context.Context, uid int64, list domain.HistoryList) error {
	blob, err := sonic.MarshalString(r.toModel(list))
	if err != nil {
		return code.ErrorHistorySerialize.WithDetails(err.Error())
	}

	res := r.dao.WithContext(ctx).
		Model(&model.User{}).
		Where("uid = ? AND is_deleted = ?", uid, 0).
		Updates(map[string]interface{}{
			"history":    blob,
			"updated_at": timex.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// MySQL reports zero affected rows when nothing changed
	var n int64
	if err := r.dao.WithContext(ctx).Model(&model.User{}).Where("uid = ? AND is_deleted = ?", uid, 0).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var _ domain.HistoryRepository = (*historyRepository)(nil)
