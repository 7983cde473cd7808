package api_router

import (
	"github.com/haierkeys/fast-note-history-service/internal/app"
	"github.com/haierkeys/fast-note-history-service/internal/dto"
	pkgapp "github.com/haierkeys/fast-note-history-service/pkg/app"
	"github.com/haierkeys/fast-note-history-service/pkg/code"
	apperrors "github.com/haierkeys/fast-note-history-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FolderHandler 文件夹 API 路由处理器
type FolderHandler struct {
	*Handler
}

// NewFolderHandler 创建 FolderHandler 实例
func NewFolderHandler(a *app.App) *FolderHandler {
	return &FolderHandler{
		Handler: NewHandler(a),
	}
}

// Create 创建文件夹
// @Summary 创建文件夹
// @Tags 文件夹
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Accept json
// @Produce json
// @Param params body dto.FolderCreateRequest true "文件夹参数"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "成功"
// @Failure 404 {object} pkgapp.Res "父文件夹不存在"
// @Router /api/folders [post]
func (h *FolderHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.FolderCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("FolderHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("FolderHandler.Create err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	folder, err := h.App.FolderService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "FolderHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(folder))
}

// Delete 删除空文件夹
// @Summary 删除文件夹
// @Tags 文件夹
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param folderId path string true "文件夹 ID"
// @Success 200 {object} pkgapp.Res "成功"
// @Failure 400 {object} pkgapp.Res "文件夹不为空"
// @Failure 404 {object} pkgapp.Res "文件夹不存在"
// @Router /api/folders/{folderId} [delete]
func (h *FolderHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("FolderHandler.Delete err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.FolderService.Delete(ctx, uid, c.Param("folderId")); err != nil {
		h.logError(ctx, "FolderHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
