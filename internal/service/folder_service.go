package service

import (
	"context"
	"errors"
	"time"

	"github.com/haierkeys/fast-note-history-service/internal/domain"
	"github.com/haierkeys/fast-note-history-service/internal/dto"
	"github.com/haierkeys/fast-note-history-service/pkg/code"

	"gorm.io/gorm"
)

// FolderService 文件夹业务服务接口
type FolderService interface {
	Create(ctx context.Context, uid int64, params *dto.FolderCreateRequest) (*dto.NoteDTO, error)
	Delete(ctx context.Context, uid int64, folderID string) error
}

type folderService struct {
	noteRepo domain.NoteRepository
}

// NewFolderService 创建 FolderService 实例
func NewFolderService(noteRepo domain.NoteRepository) FolderService {
	return &folderService{noteRepo: noteRepo}
}

// Create 创建文件夹，父级必须是当前用户已有的文件夹
func (s *folderService) Create(ctx context.Context, uid int64, params *dto.FolderCreateRequest) (*dto.NoteDTO, error) {
	parentID, err := resolveFolder(ctx, s.noteRepo, uid, params.ParentID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	folder, err := s.noteRepo.Create(ctx, &domain.Note{
		OwnerID:   uid,
		ParentID:  parentID,
		Type:      domain.NoteTypeFolder,
		Title:     params.Title,
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return noteToDTO(folder), nil
}

// Delete removes an empty folder
// Delete 删除文件夹，文件夹非空时拒绝删除
func (s *folderService) Delete(ctx context.Context, uid int64, folderID string) error {
	id, err := resolveFolder(ctx, s.noteRepo, uid, folderID)
	if err != nil {
		return err
	}
	if id == nil {
		return code.ErrorFolderNotFound
	}

	children, err := s.noteRepo.ListCount(ctx, uid, id)
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	if children > 0 {
		return code.ErrorFolderNotEmpty
	}

	if err := s.noteRepo.Delete(ctx, *id, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorFolderNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

var _ FolderService = (*folderService)(nil)
