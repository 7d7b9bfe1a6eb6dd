package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shophub_v1_202608/pkg/errs"
)

// ==================== 统一响应封装 ====================

// Response 统一响应体，错误响应额外携带 statusCode（与中间件的错误体一致）
type Response struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
	StatusCode int         `json:"statusCode,omitempty"`
}

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

// Message 200 纯消息响应（删除等无数据返回的操作）
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Response{Success: true, Message: msg})
}

// Fail 错误响应，按 AppError 映射状态码
// 500 的内部细节不回给客户端，只写日志
func Fail(c *gin.Context, logger *zap.SugaredLogger, err error) {
	appErr := errs.AsAppError(err)
	msg := appErr.Message
	if appErr.StatusCode >= http.StatusInternalServerError {
		logger.Errorw("请求处理失败",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		msg = "服务器内部错误"
	}
	c.JSON(appErr.StatusCode, Response{Success: false, Error: msg, StatusCode: appErr.StatusCode})
}

// BadRequest 400 参数绑定错误
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: "参数错误: " + err.Error(), StatusCode: http.StatusBadRequest})
}

// pathID 解析路径里的数字 ID
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "无效的 " + name, StatusCode: http.StatusBadRequest})
		return 0, false
	}
	return id, true
}
