package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/knitware/stitch-erp/internal/catalog/repository"
	"github.com/knitware/stitch-erp/internal/catalog/service"
)

// CatalogItemHandler 通用物品处理器
type CatalogItemHandler struct {
	svc *service.CatalogItemService
}

func NewCatalogItemHandler(svc *service.CatalogItemService) *CatalogItemHandler {
	return &CatalogItemHandler{svc: svc}
}

// List 物品列表
// GET /catalog/items
func (h *CatalogItemHandler) List(c *gin.Context) {
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

// Get 物品详情
// GET /catalog/items/:id
func (h *CatalogItemHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "物品不存在")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, item)
}

// PreviewID 预览下一个产品ID（仅供表单预填，以创建时实际分配为准）
// POST /catalog/items/preview-id
func (h *CatalogItemHandler) PreviewID(c *gin.Context) {
	var req service.PreviewIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	productID, err := h.svc.PreviewID(c.Request.Context(), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, gin.H{"product_id": productID})
}

// Create 创建物品
// POST /catalog/items
func (h *CatalogItemHandler) Create(c *gin.Context) {
	var req service.CreateCatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	item, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Created(c, item)
}

// Update 更新物品
// PUT /catalog/items/:id
func (h *CatalogItemHandler) Update(c *gin.Context) {
	var req service.UpdateCatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	item, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, item)
}

// Delete 删除物品
// DELETE /catalog/items/:id
func (h *CatalogItemHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, nil)
}
