package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/knitware/stitch-erp/internal/auth/service"
)

// Handlers 认证处理器集合
type Handlers struct {
	Auth *AuthHandler
}

// NewHandlers 创建认证处理器集合
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth: NewAuthHandler(svc.Auth),
	}
}

// === 响应辅助函数（与MDM保持一致） ===

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// GetUserID 从上下文获取当前用户ID
func GetUserID(c *gin.Context) string {
	if uid, exists := c.Get("user_id"); exists {
		if s, ok := uid.(string); ok {
			return s
		}
	}
	return ""
}
