package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/knitware/stitch-erp/internal/catalog/repository"
	"github.com/knitware/stitch-erp/internal/catalog/service"
)

// FabricHandler 面料处理器
type FabricHandler struct {
	svc *service.FabricService
}

func NewFabricHandler(svc *service.FabricService) *FabricHandler {
	return &FabricHandler{svc: svc}
}

// List 面料列表
// GET /catalog/fabrics
func (h *FabricHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"search":       c.Query("search"),
		"construction": c.Query("construction"),
		"status":       c.Query("status"),
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

// Get 面料详情
// GET /catalog/fabrics/:id
func (h *FabricHandler) Get(c *gin.Context) {
	fabric, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "面料不存在")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, fabric)
}

// Create 创建面料
// POST /catalog/fabrics
func (h *FabricHandler) Create(c *gin.Context) {
	var req service.CreateFabricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	fabric, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Created(c, fabric)
}

// Update 更新面料
// PUT /catalog/fabrics/:id
func (h *FabricHandler) Update(c *gin.Context) {
	var req service.UpdateFabricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	fabric, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, fabric)
}

// Delete 删除面料
// DELETE /catalog/fabrics/:id
func (h *FabricHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, nil)
}
