package dto

// FolderCreateRequest 创建文件夹请求参数
type FolderCreateRequest struct {
	Title    string `json:"title" form:"title" binding:"required"`
	ParentID string `json:"parentId" form:"parentId"`
}
