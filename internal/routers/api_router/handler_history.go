package api_router

import (
	"net/url"
	"strings"

	"github.com/haierkeys/fast-note-history-service/internal/app"
	"github.com/haierkeys/fast-note-history-service/internal/dto"
	pkgapp "github.com/haierkeys/fast-note-history-service/pkg/app"
	"github.com/haierkeys/fast-note-history-service/pkg/code"
	apperrors "github.com/haierkeys/fast-note-history-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HistoryHandler 访问历史 API 路由处理器
// 成功时响应体沿用客户端约定的格式（原始 JSON 或空响应体），错误时使用统一错误结构
type HistoryHandler struct {
	*Handler
}

// NewHistoryHandler 创建 HistoryHandler 实例
func NewHistoryHandler(a *app.App) *HistoryHandler {
	return &HistoryHandler{
		Handler: NewHandler(a),
	}
}

// Get 获取访问历史
// @Summary 获取访问历史
// @Description 返回当前用户的访问历史。指定 parent（或 Referer 形如 /?<folderId> 或 ?parent=<folderId>）时，只返回该文件夹下的文档
// @Tags 历史
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param params query dto.HistoryGetRequest false "查询参数"
// @Success 200 {object} dto.HistoryResponse "成功"
// @Failure 401 {object} pkgapp.Res "未登录"
// @Failure 404 {object} pkgapp.Res "用户或文件夹不存在"
// @Router /api/history [get]
func (h *HistoryHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.HistoryGetRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("HistoryHandler.Get.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("HistoryHandler.Get err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	parent := params.Parent
	if parent == "" {
		parent = parentFromReferer(c.Request.Referer())
	}

	ctx := c.Request.Context()

	list, err := h.App.HistoryService.Get(ctx, uid, parent)
	if err != nil {
		h.logError(ctx, "HistoryHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	entries, err := dto.HistoryFromDomain(list)
	if err != nil {
		h.logError(ctx, "HistoryHandler.Get", err)
		response.ToResponse(code.ErrorHistorySerialize.WithDetails(err.Error()))
		return
	}

	response.ToRawJSON(dto.HistoryResponse{History: entries})
}

// Replace 整体替换访问历史
// @Summary 替换访问历史
// @Description history 字段为 JSON 数组字符串，整体替换当前用户的访问历史
// @Tags 历史
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Accept json
// @Param params body dto.HistoryReplaceRequest true "历史记录"
// @Success 200 "成功（空响应体）"
// @Failure 400 {object} pkgapp.Res "history 缺失或不是 JSON 数组"
// @Failure 404 {object} pkgapp.Res "用户不存在"
// @Router /api/history [post]
func (h *HistoryHandler) Replace(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.HistoryReplaceRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("HistoryHandler.Replace.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("HistoryHandler.Replace err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	list, err := dto.ParseHistoryList(params.History)
	if err != nil {
		h.App.Logger().Warn("HistoryHandler.Replace parse history", zap.Int64("uid", uid), zap.Error(err))
		response.ToResponse(code.ErrorHistoryInvalid.WithDetails(err.Error()))
		return
	}

	if err := h.App.HistoryService.ReplaceAll(ctx, uid, list); err != nil {
		h.logError(ctx, "HistoryHandler.Replace", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToEmpty()
}

// SetPinned 置顶或取消置顶单条历史
// @Summary 设置置顶
// @Tags 历史
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Accept json
// @Param noteId path string true "笔记 ID"
// @Param params body dto.HistoryPinRequest true "pinned 为 \"true\" 或 \"false\""
// @Success 200 "成功（空响应体）"
// @Failure 400 {object} pkgapp.Res "pinned 取值无效"
// @Failure 404 {object} pkgapp.Res "用户或历史记录不存在"
// @Router /api/history/{noteId} [post]
func (h *HistoryHandler) SetPinned(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.HistoryPinRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("HistoryHandler.SetPinned.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("HistoryHandler.SetPinned err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.HistoryService.SetPinned(ctx, uid, c.Param("noteId"), params.Pinned); err != nil {
		h.logError(ctx, "HistoryHandler.SetPinned", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToEmpty()
}

// DeleteOne 删除单条历史
// @Summary 删除单条历史
// @Tags 历史
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Param noteId path string true "笔记 ID"
// @Success 200 "成功（空响应体）"
// @Failure 404 {object} pkgapp.Res "用户或历史记录不存在"
// @Router /api/history/{noteId} [delete]
func (h *HistoryHandler) DeleteOne(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("HistoryHandler.DeleteOne err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.HistoryService.DeleteOne(ctx, uid, c.Param("noteId")); err != nil {
		h.logError(ctx, "HistoryHandler.DeleteOne", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToEmpty()
}

// DeleteAll 清空访问历史
// @Summary 清空访问历史
// @Tags 历史
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Success 200 "成功（空响应体）"
// @Failure 404 {object} pkgapp.Res "用户不存在"
// @Router /api/history [delete]
func (h *HistoryHandler) DeleteAll(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("HistoryHandler.DeleteAll err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.HistoryService.DeleteAll(ctx, uid); err != nil {
		h.logError(ctx, "HistoryHandler.DeleteAll", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToEmpty()
}

// parentFromReferer 从 Referer 中取父文件夹 ID
// Folder pages link as "/?<folderId>", so a query without a parent key is taken
// whole as the id, up to the first '&'. "?parent=<id>" is accepted as well.
func parentFromReferer(referer string) string {
	_, query, ok := strings.Cut(referer, "?")
	if !ok {
		return ""
	}
	query, _, _ = strings.Cut(query, "#")
	if query == "" {
		return ""
	}
	if values, err := url.ParseQuery(query); err == nil && values.Has("parent") {
		return values.Get("parent")
	}
	bare, _, _ := strings.Cut(query, "&")
	// base64 ids may carry a literal '+', so no query-style unescaping
	if id, err := url.PathUnescape(bare); err == nil {
		return id
	}
	return bare
}
