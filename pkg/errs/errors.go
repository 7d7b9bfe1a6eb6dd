package errs

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// ==================== 业务错误类型 ====================

// AppError 业务错误，携带 HTTP 状态码
// service 层只返回 AppError，controller 层统一映射为响应
type AppError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Err        error  `json:"-"` // 内部原因，不对外输出
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ==================== 构造函数 ====================

// Validation 参数/业务校验失败 (400)
func Validation(msg string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: msg}
}

// Unauthorized 未认证 (401)
func Unauthorized(msg string) *AppError {
	return &AppError{StatusCode: http.StatusUnauthorized, Message: msg}
}

// Forbidden 无权限 (403)
func Forbidden(msg string) *AppError {
	return &AppError{StatusCode: http.StatusForbidden, Message: msg}
}

// NotFound 资源不存在 (404)
func NotFound(msg string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Message: msg}
}

// Conflict 唯一键冲突 (409)
func Conflict(msg string) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Message: msg}
}

// Internal 内部错误 (500)，原始错误保留在 Err 中仅用于日志
func Internal(err error) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: "internal server error", Err: err}
}

// ==================== 数据库错误翻译 ====================

// FromDB 把 gorm 错误翻译为业务错误
// 唯一约束冲突交给存储层约束兜底，这里统一转为 409（替代 check-then-insert）
func FromDB(err error, notFoundMsg, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(notFoundMsg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict(conflictMsg)
	default:
		return Internal(err)
	}
}

// ==================== 辅助函数 ====================

// AsAppError 提取 AppError，失败时包装为 500
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// IsNotFound 判断是否 404 错误
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.StatusCode == http.StatusNotFound
}

// IsConflict 判断是否 409 错误
func IsConflict(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.StatusCode == http.StatusConflict
}

// IsUnauthorized 判断是否 401 错误
func IsUnauthorized(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.StatusCode == http.StatusUnauthorized
}

// IsForbidden 判断是否 403 错误
func IsForbidden(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.StatusCode == http.StatusForbidden
}
