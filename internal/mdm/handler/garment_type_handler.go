package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/knitware/stitch-erp/internal/mdm/repository"
	"github.com/knitware/stitch-erp/internal/mdm/service"
)

// GarmentTypeHandler 款式类型处理器
type GarmentTypeHandler struct {
	svc *service.GarmentTypeService
}

func NewGarmentTypeHandler(svc *service.GarmentTypeService) *GarmentTypeHandler {
	return &GarmentTypeHandler{svc: svc}
}

// List 款式类型列表
// GET /mdm/garment-types
func (h *GarmentTypeHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"search":   c.Query("search"),
		"category": c.Query("category"),
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

// ListAll 全部启用款式类型
// GET /mdm/garment-types/all
func (h *GarmentTypeHandler) ListAll(c *gin.Context) {
	items, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, gin.H{"items": items})
}

// Get 款式类型详情
// GET /mdm/garment-types/:id
func (h *GarmentTypeHandler) Get(c *gin.Context) {
	gt, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "款式类型不存在")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, gt)
}

// Create 创建款式类型
// POST /mdm/garment-types
func (h *GarmentTypeHandler) Create(c *gin.Context) {
	var req service.CreateGarmentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	gt, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Created(c, gt)
}

// Update 更新款式类型
// PUT /mdm/garment-types/:id
func (h *GarmentTypeHandler) Update(c *gin.Context) {
	var req service.UpdateGarmentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	gt, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, gt)
}

// Delete 删除款式类型
// DELETE /mdm/garment-types/:id
func (h *GarmentTypeHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, nil)
}
