package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/knitware/stitch-erp/internal/mdm/repository"
	"github.com/knitware/stitch-erp/internal/mdm/service"
)

// SizeHandler 尺码处理器
type SizeHandler struct {
	svc *service.SizeService
}

func NewSizeHandler(svc *service.SizeService) *SizeHandler {
	return &SizeHandler{svc: svc}
}

// List 尺码列表
// GET /mdm/sizes
func (h *SizeHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"search":     c.Query("search"),
		"size_group": c.Query("size_group"),
		"status":     c.Query("status"),
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

// ListAll 全部启用尺码
// GET /mdm/sizes/all
func (h *SizeHandler) ListAll(c *gin.Context) {
	items, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, gin.H{"items": items})
}

// Get 尺码详情
// GET /mdm/sizes/:id
func (h *SizeHandler) Get(c *gin.Context) {
	size, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "尺码不存在")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, size)
}

// Create 创建尺码
// POST /mdm/sizes
func (h *SizeHandler) Create(c *gin.Context) {
	var req service.CreateSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	size, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Created(c, size)
}

// Update 更新尺码
// PUT /mdm/sizes/:id
func (h *SizeHandler) Update(c *gin.Context) {
	var req service.UpdateSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	size, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, size)
}

// Delete 删除尺码
// DELETE /mdm/sizes/:id
func (h *SizeHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, nil)
}
