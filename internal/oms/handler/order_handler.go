package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/knitware/stitch-erp/internal/oms/repository"
	"github.com/knitware/stitch-erp/internal/oms/service"
)

// OrderHandler 销售订单处理器，含颜色尺码分解、交期、装箱与导出
type OrderHandler struct {
	svc        *service.OrderService
	breakdowns *service.BreakdownService
	deliveries *service.DeliveryService
	packings   *service.PackingService
	exports    *service.ExportService
}

func NewOrderHandler(svc *service.OrderService, breakdowns *service.BreakdownService, deliveries *service.DeliveryService, packings *service.PackingService, exports *service.ExportService) *OrderHandler {
	return &OrderHandler{
		svc:        svc,
		breakdowns: breakdowns,
		deliveries: deliveries,
		packings:   packings,
		exports:    exports,
	}
}

// List 订单列表
// GET /oms/orders
func (h *OrderHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"search":      c.Query("search"),
		"contract_id": c.Query("contract_id"),
		"status":      c.Query("status"),
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

// Get 订单详情（含颜色尺码明细）
// GET /oms/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	detail, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "订单不存在")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, detail)
}

// Create 创建订单
// POST /oms/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	order, err := h.svc.Create(c.Request.Context(), &req, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Created(c, order)
}

// Update 更新订单
// PUT /oms/orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	var req service.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	order, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, order)
}

// UpdateStatus 订单状态流转
// PUT /oms/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	order, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, order)
}

// Delete 删除订单
// DELETE /oms/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, nil)
}

// ==================== 颜色尺码分解 ====================

// ListBreakdowns 订单颜色尺码明细
// GET /oms/orders/:id/breakdowns
func (h *OrderHandler) ListBreakdowns(c *gin.Context) {
	items, err := h.breakdowns.ListByOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "订单不存在")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, items)
}

// ReplaceBreakdowns 整单替换颜色尺码明细
// PUT /oms/orders/:id/breakdowns
func (h *OrderHandler) ReplaceBreakdowns(c *gin.Context) {
	var req service.ReplaceBreakdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	items, err := h.breakdowns.Replace(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, items)
}

// ==================== 交期计划 ====================

// ListDeliveries 订单交期计划
// GET /oms/orders/:id/deliveries
func (h *OrderHandler) ListDeliveries(c *gin.Context) {
	items, err := h.deliveries.ListByOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "订单不存在")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, items)
}

// CreateDelivery 创建交期计划
// POST /oms/orders/:id/deliveries
func (h *OrderHandler) CreateDelivery(c *gin.Context) {
	var req service.CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	schedule, err := h.deliveries.Create(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Created(c, schedule)
}

// UpdateDelivery 更新交期计划
// PUT /oms/deliveries/:id
func (h *OrderHandler) UpdateDelivery(c *gin.Context) {
	var req service.UpdateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	schedule, err := h.deliveries.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, schedule)
}

// DeleteDelivery 删除交期计划
// DELETE /oms/deliveries/:id
func (h *OrderHandler) DeleteDelivery(c *gin.Context) {
	if err := h.deliveries.Delete(c.Request.Context(), c.Param("id")); err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, nil)
}

// ==================== 装箱明细 ====================

// ListPacking 订单装箱明细及汇总
// GET /oms/orders/:id/packing
func (h *OrderHandler) ListPacking(c *gin.Context) {
	summary, err := h.packings.ListByOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "订单不存在")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, summary)
}

// CreatePacking 创建装箱明细
// POST /oms/orders/:id/packing
func (h *OrderHandler) CreatePacking(c *gin.Context) {
	var req service.CreatePackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	detail, err := h.packings.Create(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Created(c, detail)
}

// UpdatePacking 更新装箱明细
// PUT /oms/packing/:id
func (h *OrderHandler) UpdatePacking(c *gin.Context) {
	var req service.UpdatePackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	detail, err := h.packings.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, detail)
}

// DeletePacking 删除装箱明细
// DELETE /oms/packing/:id
func (h *OrderHandler) DeletePacking(c *gin.Context) {
	if err := h.packings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, nil)
}

// ==================== Excel 导出 ====================

// ExportBreakdown 导出颜色尺码矩阵
// GET /oms/orders/:id/export/breakdown
func (h *OrderHandler) ExportBreakdown(c *gin.Context) {
	f, filename, err := h.exports.ExportBreakdown(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "订单不存在")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}

// ExportPackingList 导出装箱单
// GET /oms/orders/:id/export/packing-list
func (h *OrderHandler) ExportPackingList(c *gin.Context) {
	f, filename, err := h.exports.ExportPackingList(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "订单不存在")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}
