// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/haierkeys/fast-note-history-service/pkg/timex"

// NoteDTO Note data transfer object; ids are in encoded form
// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID        string     `json:"id"`
	ParentID  string     `json:"parentId"` // empty at top level
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Tags      []string   `json:"tags"`
	UpdatedAt timex.Time `json:"updatedAt"`
	CreatedAt timex.Time `json:"createdAt"`
}

// NoteNoContentDTO Note DTO without content
// NoteNoContentDTO 不包含内容的笔记 DTO
type NoteNoContentDTO struct {
	ID        string     `json:"id"`
	ParentID  string     `json:"parentId"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Tags      []string   `json:"tags"`
	UpdatedAt timex.Time `json:"updatedAt"`
	CreatedAt timex.Time `json:"createdAt"`
}

// NoteCreateRequest Request parameters for creating a document
// 创建笔记请求参数
type NoteCreateRequest struct {
	Content  string `json:"content" form:"content"`
	Title    string `json:"title" form:"title"`       // overrides the parsed title // 为空时从内容解析
	ParentID string `json:"parentId" form:"parentId"` // encoded folder id, empty for top level
}

// NoteUpdateRequest Request parameters for updating a document
// 更新笔记请求参数
type NoteUpdateRequest struct {
	Content string `json:"content" form:"content"`
	Title   string `json:"title" form:"title"`
}

// NoteListRequest 笔记列表请求参数
type NoteListRequest struct {
	Parent string `json:"parent" form:"parent"`
}

// NoteMoveRequest Request parameters for moving a note; empty ParentID moves to top level
// 移动笔记请求参数
type NoteMoveRequest struct {
	ParentID string `json:"parentId" form:"parentId"`
}
