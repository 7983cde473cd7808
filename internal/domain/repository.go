// Package domain 定义领域模型和接口
package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByUID 根据用户ID获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByUsername 根据用户名获取用户
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)

	// GetAllUIDs 获取所有用户ID
	GetAllUIDs(ctx context.Context) ([]int64, error)

	// UpdatePassword stores a new password hash; gorm.ErrRecordNotFound when the user is gone
	// UpdatePassword 更新密码哈希
	UpdatePassword(ctx context.Context, uid int64, passwordHash string) error

	// UpdateAvatar 更新头像地址
	UpdateAvatar(ctx context.Context, uid int64, avatar string) error
}

// NoteRepository 笔记仓储接口
// Lookups are always scoped to the owner; a note of another user is reported as not found.
type NoteRepository interface {
	// GetByID 根据ID获取笔记（文件夹或文档）
	GetByID(ctx context.Context, id uuid.UUID, ownerID int64) (*Note, error)

	// Create 创建笔记
	Create(ctx context.Context, note *Note) (*Note, error)

	// UpdateContent 更新笔记内容、标题、标签
	UpdateContent(ctx context.Context, note *Note) (*Note, error)

	// UpdateParent 移动笔记到新的父文件夹，parentID 为 nil 表示顶层
	UpdateParent(ctx context.Context, id uuid.UUID, ownerID int64, parentID *uuid.UUID) error

	// Delete 删除笔记
	Delete(ctx context.Context, id uuid.UUID, ownerID int64) error

	// List lists the notes directly under parentID (nil: top level), newest update first
	// List 列出父文件夹下的笔记，按更新时间倒序
	List(ctx context.Context, ownerID int64, parentID *uuid.UUID, offset, limit int) ([]*Note, error)

	// ListCount 父文件夹下的笔记数量
	ListCount(ctx context.Context, ownerID int64, parentID *uuid.UUID) (int64, error)

	// Count counts notes of the owner with the given id, optionally restricted to a type
	Count(ctx context.Context, ownerID int64, id uuid.UUID, noteType *NoteType) (int64, error)
}

// HistoryRepository persists each user's history list as one blob on the user record
// HistoryRepository 历史记录仓储接口
type HistoryRepository interface {
	// Get returns the stored list; gorm.ErrRecordNotFound when the user does not exist
	Get(ctx context.Context, uid int64) (HistoryList, error)

	// Save overwrites the stored list; gorm.ErrRecordNotFound when the user does not exist
	Save(ctx context.Context, uid int64, list HistoryList) error
}
