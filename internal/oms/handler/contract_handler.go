package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/knitware/stitch-erp/internal/oms/repository"
	"github.com/knitware/stitch-erp/internal/oms/service"
)

// ContractHandler 销售合同处理器
type ContractHandler struct {
	svc *service.ContractService
}

func NewContractHandler(svc *service.ContractService) *ContractHandler {
	return &ContractHandler{svc: svc}
}

// List 合同列表
// GET /oms/contracts
func (h *ContractHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"search": c.Query("search"),
		"buyer":  c.Query("buyer"),
		"season": c.Query("season"),
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

// Get 合同详情（含订单列表）
// GET /oms/contracts/:id
func (h *ContractHandler) Get(c *gin.Context) {
	detail, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "合同不存在")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, detail)
}

// Create 创建合同
// POST /oms/contracts
func (h *ContractHandler) Create(c *gin.Context) {
	var req service.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	contract, err := h.svc.Create(c.Request.Context(), &req, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Created(c, contract)
}

// Update 更新合同
// PUT /oms/contracts/:id
func (h *ContractHandler) Update(c *gin.Context) {
	var req service.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	contract, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, contract)
}

// UpdateStatus 合同状态流转
// PUT /oms/contracts/:id/status
func (h *ContractHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateContractStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	contract, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, contract)
}

// Delete 删除合同
// DELETE /oms/contracts/:id
func (h *ContractHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, nil)
}
