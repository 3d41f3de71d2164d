package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/knitware/stitch-erp/internal/sample/repository"
	"github.com/knitware/stitch-erp/internal/sample/service"
)

// SampleHandler 打样单处理器
type SampleHandler struct {
	svc *service.SampleService
}

func NewSampleHandler(svc *service.SampleService) *SampleHandler {
	return &SampleHandler{svc: svc}
}

// List 打样单列表
// GET /samples
func (h *SampleHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"search": c.Query("search"),
		"buyer":  c.Query("buyer"),
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

// Get 打样单完整载荷
// GET /samples/:id
func (h *SampleHandler) Get(c *gin.Context) {
	detail, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "打样单不存在")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, detail)
}

// Create 创建打样单草稿
// POST /samples
func (h *SampleHandler) Create(c *gin.Context) {
	var req service.CreateSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	sample, err := h.svc.Create(c.Request.Context(), &req, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Created(c, sample)
}

// StepBasics 向导第一步：基础信息
// PUT /samples/:id/steps/basics
func (h *SampleHandler) StepBasics(c *gin.Context) {
	var req service.UpdateBasicsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	sample, err := h.svc.UpdateBasics(c.Request.Context(), c.Param("id"), &req, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, sample)
}

// StepMaterials 向导第二步：用料清单
// PUT /samples/:id/steps/materials
func (h *SampleHandler) StepMaterials(c *gin.Context) {
	var req service.UpdateMaterialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	sample, err := h.svc.UpdateMaterials(c.Request.Context(), c.Param("id"), &req, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, sample)
}

// StepColorways 向导第三步：配色与件数
// PUT /samples/:id/steps/colorways
func (h *SampleHandler) StepColorways(c *gin.Context) {
	var req service.UpdateColorwaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	sample, err := h.svc.UpdateColorways(c.Request.Context(), c.Param("id"), &req, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, sample)
}

// StepWorkmanship 向导第四步：工艺要求
// PUT /samples/:id/steps/workmanship
func (h *SampleHandler) StepWorkmanship(c *gin.Context) {
	var req service.UpdateWorkmanshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	sample, err := h.svc.UpdateWorkmanship(c.Request.Context(), c.Param("id"), &req, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, sample)
}

// Submit 提交打样单
// POST /samples/:id/submit
func (h *SampleHandler) Submit(c *gin.Context) {
	sample, err := h.svc.Submit(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, sample)
}

// UpdateStatus 打样单状态流转
// PUT /samples/:id/status
func (h *SampleHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateSampleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	sample, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, sample)
}

// ListActivities 打样单操作日志
// GET /samples/:id/activities
func (h *SampleHandler) ListActivities(c *gin.Context) {
	page, pageSize := GetPagination(c)

	result, err := h.svc.ListActivities(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "打样单不存在")
			return
		}
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
