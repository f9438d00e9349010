package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 成功响应结构，data 总是存在（可能为 null）
type Response struct {
	Message string      `json:"message"` // 响应消息
	Data    interface{} `json:"data"`    // 响应数据
}

// ErrorResponse 失败响应结构
type ErrorResponse struct {
	Error string `json:"error"`
}

// Success 200 成功响应
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Message: message, Data: data})
}

// Created 201 创建成功
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Message: message, Data: data})
}

// Message 只有消息没有数据的 200 响应
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Error 错误响应
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// BadRequest 400错误：请求缺少必需数据或数据不合法
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// InternalError 500错误：操作执行失败
// err 记录到 gin 上下文中，由请求日志中间件输出
func InternalError(c *gin.Context, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	Error(c, http.StatusInternalServerError, message)
}
