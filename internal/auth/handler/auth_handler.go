package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/knitware/stitch-erp/internal/auth/repository"
	"github.com/knitware/stitch-erp/internal/auth/service"
)

// AuthHandler 认证接口
type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// RegisterAdmin 初始化系统管理员（仅空库时可用）
// POST /auth/register-admin
func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	var req service.RegisterAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	user, err := h.svc.RegisterAdmin(c.Request.Context(), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Created(c, user)
}

// Login 用户名密码登录
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	result, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		Error(c, 40100, err.Error())
		return
	}

	Success(c, result)
}

// Refresh 刷新令牌
// POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req service.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		Error(c, 40100, err.Error())
		return
	}

	Success(c, pair)
}

// Logout 登出，作废刷新令牌
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req service.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	if err := h.svc.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, nil)
}

// Me 当前登录用户
// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.svc.Me(c.Request.Context(), GetUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "用户不存在")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, user)
}
