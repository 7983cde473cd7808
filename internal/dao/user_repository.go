package dao

import (
	"context"
	"time"

	"github.com/haierkeys/fast-note-history-service/internal/domain"
	"github.com/haierkeys/fast-note-history-service/internal/model"
	"github.com/haierkeys/fast-note-history-service/pkg/timex"

	"gorm.io/gorm"
)

// userRepository 实现 domain.UserRepository 接口
type userRepository struct {
	dao *Dao
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *userRepository) toDomain(m *model.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		UID:       m.UID,
		Email:     m.Email,
		Username:  m.Username,
		Password:  m.Password,
		Avatar:    m.Avatar,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *userRepository) toModel(user *domain.User) *model.User {
	return &model.User{
		UID:       user.UID,
		Email:     user.Email,
		Username:  user.Username,
		Password:  user.Password,
		Avatar:    user.Avatar,
		CreatedAt: timex.Time(user.CreatedAt),
		UpdatedAt: timex.Time(user.UpdatedAt),
	}
}

func (r *userRepository) first(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var m model.User
	err := r.dao.WithContext(ctx).
		Omit("history").
		Where(query, arg).
		Where("is_deleted = ?", 0).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByUID 根据UID获取用户
func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	return r.first(ctx, "uid = ?", uid)
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

// GetByUsername 根据用户名获取用户
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.first(ctx, "username = ?", username)
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := r.toModel(user)
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()
	m.History = "[]"

	if err := r.dao.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// GetAllUIDs 获取所有用户UID
func (r *userRepository) GetAllUIDs(ctx context.Context) ([]int64, error) {
	var uids []int64
	err := r.dao.WithContext(ctx).
		Model(&model.User{}).
		Where("is_deleted = ?", 0).
		Order("uid").
		Pluck("uid", &uids).Error
	if err != nil {
		return nil, err
	}
	return uids, nil
}

// updateColumn 更新单个字段并刷新 updated_at，用户不存在时返回 gorm.ErrRecordNotFound
func (r *userRepository) updateColumn(ctx context.Context, uid int64, column string, value interface{}) error {
	res := r.dao.WithContext(ctx).
		Model(&model.User{}).
		Where("uid = ? AND is_deleted = ?", uid, 0).
		Updates(map[string]interface{}{
			column:       value,
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

// UpdatePassword 更新用户密码
func (r *userRepository) UpdatePassword(ctx context.Context, uid int64, passwordHash string) error {
	return r.updateColumn(ctx, uid, "password", passwordHash)
}

// UpdateAvatar 更新用户头像
func (r *userRepository) UpdateAvatar(ctx context.Context, uid int64, avatar string) error {
	return r.updateColumn(ctx, uid, "avatar", avatar)
}

// 确保 userRepository 实现了 domain.UserRepository 接口
var _ domain.UserRepository = (*userRepository)(nil)
