package code

import "net/http"

var (
	Success               = NewSuss(1, lang{en: "Success", zh_cn: "成功"})
	SuccessPasswordUpdate = NewSuss(2, lang{en: "Password updated", zh_cn: "密码已更新"})

	ErrorServerInternal   = NewError(500, http.StatusInternalServerError, lang{en: "Internal server error", zh_cn: "服务器内部错误"})
	ErrorInvalidParams    = NewError(400, http.StatusBadRequest, lang{en: "Invalid parameters", zh_cn: "参数错误"})
	ErrorNotFoundAPI      = NewError(404, http.StatusNotFound, lang{en: "API not found", zh_cn: "接口不存在"})
	ErrorTooManyRequests  = NewError(429, http.StatusTooManyRequests, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorDBQuery          = NewError(501, http.StatusInternalServerError, lang{en: "Database query failed", zh_cn: "数据库查询失败"})
	ErrorRequestTimeout   = NewError(504, http.StatusGatewayTimeout, lang{en: "Request timeout", zh_cn: "请求超时"})
	ErrorTokenGenerate    = NewError(505, http.StatusInternalServerError, lang{en: "Failed to generate token", zh_cn: "生成令牌失败"})
	ErrorPasswordHash     = NewError(506, http.StatusInternalServerError, lang{en: "Failed to hash password", zh_cn: "密码加密失败"})
	ErrorHistorySerialize = NewError(507, http.StatusInternalServerError, lang{en: "Failed to serialize history", zh_cn: "历史记录序列化失败"})

	ErrorNotUserAuthToken     = NewError(401, http.StatusUnauthorized, lang{en: "Not logged in", zh_cn: "未登录"})
	ErrorInvalidUserAuthToken = NewError(402, http.StatusUnauthorized, lang{en: "Invalid or expired token", zh_cn: "登录令牌无效或已过期"})

	ErrorUserNotFound           = NewError(410, http.StatusNotFound, lang{en: "User not found", zh_cn: "用户不存在"})
	ErrorUserRegisterIsDisable  = NewError(411, http.StatusForbidden, lang{en: "Registration is disabled", zh_cn: "注册功能已关闭"})
	ErrorUserUsernameNotValid   = NewError(412, http.StatusBadRequest, lang{en: "Username is not valid", zh_cn: "用户名不合法"})
	ErrorUserPasswordNotMatch   = NewError(413, http.StatusBadRequest, lang{en: "Passwords do not match", zh_cn: "两次输入的密码不一致"})
	ErrorUserEmailAlreadyExists = NewError(414, http.StatusConflict, lang{en: "Email already exists", zh_cn: "邮箱已存在"})
	ErrorUserAlreadyExists      = NewError(415, http.StatusConflict, lang{en: "Username already exists", zh_cn: "用户名已存在"})
	ErrorUserLoginFailed        = NewError(416, http.StatusUnauthorized, lang{en: "Wrong account or password", zh_cn: "账号或密码错误"})
	ErrorUserOldPasswordFailed  = NewError(417, http.StatusUnauthorized, lang{en: "Wrong password", zh_cn: "原密码错误"})

	ErrorNoteNotFound       = NewError(420, http.StatusNotFound, lang{en: "Note not found", zh_cn: "笔记不存在"})
	ErrorFolderNotFound     = NewError(421, http.StatusNotFound, lang{en: "Folder not found", zh_cn: "文件夹不存在"})
	ErrorFolderNotEmpty     = NewError(422, http.StatusBadRequest, lang{en: "Folder is not empty", zh_cn: "文件夹不为空"})
	ErrorNoteMoveInvalid    = NewError(423, http.StatusBadRequest, lang{en: "Invalid move target", zh_cn: "无效的移动目标"})
	ErrorNoteTypeMismatch   = NewError(424, http.StatusBadRequest, lang{en: "Operation not allowed for this note type", zh_cn: "该笔记类型不支持此操作"})
	ErrorHistoryNotFound    = NewError(430, http.StatusNotFound, lang{en: "History entry not found", zh_cn: "历史记录不存在"})
	ErrorHistoryInvalid     = NewError(431, http.StatusBadRequest, lang{en: "History must be a JSON array", zh_cn: "历史记录必须是 JSON 数组"})
	ErrorHistoryPinnedValue = NewError(432, http.StatusBadRequest, lang{en: "Pinned must be true or false", zh_cn: "pinned 只能为 true 或 false"})
)
