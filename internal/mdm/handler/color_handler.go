package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/knitware/stitch-erp/internal/mdm/repository"
	"github.com/knitware/stitch-erp/internal/mdm/service"
)

// ColorHandler 颜色处理器
type ColorHandler struct {
	svc *service.ColorService
}

func NewColorHandler(svc *service.ColorService) *ColorHandler {
	return &ColorHandler{svc: svc}
}

// List 颜色列表
// GET /mdm/colors
func (h *ColorHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"search": c.Query("search"),
		"family": c.Query("family"),
		"status": c.Query("status"),
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

// ListAll 全部启用颜色
// GET /mdm/colors/all
func (h *ColorHandler) ListAll(c *gin.Context) {
	items, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, gin.H{"items": items})
}

// Get 颜色详情
// GET /mdm/colors/:id
func (h *ColorHandler) Get(c *gin.Context) {
	color, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "颜色不存在")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, color)
}

// Create 创建颜色
// POST /mdm/colors
func (h *ColorHandler) Create(c *gin.Context) {
	var req service.CreateColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	userID := GetUserID(c)
	color, err := h.svc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Created(c, color)
}

// Update 更新颜色
// PUT /mdm/colors/:id
func (h *ColorHandler) Update(c *gin.Context) {
	var req service.UpdateColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	color, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, color)
}

// Delete 删除颜色
// DELETE /mdm/colors/:id
func (h *ColorHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, nil)
}

// Import 导入颜色CSV
// POST /mdm/colors/import
func (h *ColorHandler) Import(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "缺少导入文件")
		return
	}

	src, err := file.Open()
	if err != nil {
		InternalError(c, "打开导入文件失败: "+err.Error())
		return
	}
	defer src.Close()

	userID := GetUserID(c)
	result, err := h.svc.Import(c.Request.Context(), userID, src)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, result)
}
