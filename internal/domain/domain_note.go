// Package domain 定义领域模型和接口
package domain

import (
	"time"

	"github.com/google/uuid"
)

// NoteType distinguishes folders from documents
type NoteType string

const (
	NoteTypeFolder   NoteType = "FOLDER"
	NoteTypeDocument NoteType = "DOCUMENT"
)

// Note 笔记领域模型，文件夹也是一种笔记
type Note struct {
	ID        uuid.UUID
	OwnerID   int64
	ParentID  *uuid.UUID // nil 表示顶层
	Type      NoteType
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFolder 是否为文件夹
func (n *Note) IsFolder() bool {
	return n.Type == NoteTypeFolder
}
