package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/knitware/stitch-erp/internal/catalog/repository"
	"github.com/knitware/stitch-erp/internal/catalog/service"
)

// YarnHandler 纱线处理器
type YarnHandler struct {
	svc *service.YarnService
}

func NewYarnHandler(svc *service.YarnService) *YarnHandler {
	return &YarnHandler{svc: svc}
}

// List 纱线列表
// GET /catalog/yarns
func (h *YarnHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"search":   c.Query("search"),
		"supplier": c.Query("supplier"),
		"status":   c.Query("status"),
	}

	result, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, ListResponse{
		Items: result.Items,
		Pagination: &Pagination{
			Page:       result.Page,
			PageSize:   result.PageSize,
			Total:      int(result.Total),
			TotalPages: result.TotalPages,
		},
	})
}

// Get 纱线详情
// GET /catalog/yarns/:id
func (h *YarnHandler) Get(c *gin.Context) {
	yarn, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "纱线不存在")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, yarn)
}

// Create 创建纱线
// POST /catalog/yarns
func (h *YarnHandler) Create(c *gin.Context) {
	var req service.CreateYarnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	yarn, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Created(c, yarn)
}

// Update 更新纱线
// PUT /catalog/yarns/:id
func (h *YarnHandler) Update(c *gin.Context) {
	var req service.UpdateYarnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	yarn, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, yarn)
}

// Delete 删除纱线
// DELETE /catalog/yarns/:id
func (h *YarnHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, nil)
}
