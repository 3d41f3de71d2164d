package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/knitware/stitch-erp/internal/oms/entity"
	"github.com/knitware/stitch-erp/internal/oms/repository"
)

// OrderService 销售订单服务
type OrderService struct {
	orders     *repository.OrderRepository
	contracts  *repository.ContractRepository
	breakdowns *repository.BreakdownRepository
}

func NewOrderService(orders *repository.OrderRepository, contracts *repository.ContractRepository, breakdowns *repository.BreakdownRepository) *OrderService {
	return &OrderService{orders: orders, contracts: contracts, breakdowns: breakdowns}
}

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	ContractID    string  `json:"contract_id" binding:"required"`
	GarmentTypeID string  `json:"garment_type_id"`
	StyleNo       string  `json:"style_no"`
	Quantity      int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice     float64 `json:"unit_price" binding:"required,gt=0"`
	DeliveryDate  string  `json:"delivery_date"` // 格式 2006-01-02
	Destination   string  `json:"destination"`
	Notes         string  `json:"notes"`
}

// UpdateOrderRequest 更新订单请求
type UpdateOrderRequest struct {
	GarmentTypeID string   `json:"garment_type_id"`
	StyleNo       string   `json:"style_no"`
	Quantity      *int     `json:"quantity"`
	UnitPrice     *float64 `json:"unit_price"`
	DeliveryDate  string   `json:"delivery_date"`
	Destination   string   `json:"destination"`
	Notes         string   `json:"notes"`
}

// UpdateOrderStatusRequest 订单状态流转请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderListResult 订单列表结果
type OrderListResult struct {
	Items      []entity.Order `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// OrderDetail 订单详情（含颜色尺码明细）
type OrderDetail struct {
	entity.Order
	Breakdowns []entity.OrderBreakdown `json:"breakdowns"`
}

// List 获取订单列表
func (s *OrderService) List(ctx context.Context, page, pageSize int, filters map[string]string) (*OrderListResult, error) {
	items, total, err := s.orders.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("查询订单列表失败: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &OrderListResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get 获取订单详情
func (s *OrderService) Get(ctx context.Context, id string) (*OrderDetail, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	breakdowns, err := s.breakdowns.FindByOrderID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("查询订单明细失败: %w", err)
	}

	return &OrderDetail{Order: *order, Breakdowns: breakdowns}, nil
}

// Create 创建订单。订单号由服务端按 合同号-序号 分配，金额为数量×单价。
func (s *OrderService) Create(ctx context.Context, req *CreateOrderRequest, userID string) (*entity.Order, error) {
	contract, err := s.contracts.FindByID(ctx, req.ContractID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("合同不存在")
		}
		return nil, fmt.Errorf("查询合同失败: %w", err)
	}
	if contract.Status == entity.ContractStatusCancelled || contract.Status == entity.ContractStatusClosed {
		return nil, fmt.Errorf("合同已%s，不能新增订单", contractStatusLabel(contract.Status))
	}

	seq, err := s.orders.CountByContractID(ctx, req.ContractID)
	if err != nil {
		return nil, fmt.Errorf("统计合同订单失败: %w", err)
	}

	order := &entity.Order{
		ID:            uuid.New().String()[:32],
		OrderNo:       fmt.Sprintf("%s-%02d", contract.ContractNo, seq+1),
		ContractID:    req.ContractID,
		GarmentTypeID: req.GarmentTypeID,
		StyleNo:       req.StyleNo,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		Amount:        float64(req.Quantity) * req.UnitPrice,
		Destination:   req.Destination,
		Status:        entity.OrderStatusPending,
		Notes:         req.Notes,
		CreatedBy:     userID,
	}

	if req.DeliveryDate != "" {
		delivery, err := time.Parse("2006-01-02", req.DeliveryDate)
		if err != nil {
			return nil, fmt.Errorf("交期格式错误，应为 2006-01-02")
		}
		order.DeliveryDate = &delivery
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("创建订单失败: %w", err)
	}

	if err := s.recalcContractTotal(ctx, req.ContractID); err != nil {
		return nil, err
	}
	return order, nil
}

// Update 更新订单。数量或单价变更时金额重算并回写合同汇总；
// 已录入颜色尺码明细的订单，数量必须与明细合计一致。
func (s *OrderService) Update(ctx context.Context, id string, req *UpdateOrderRequest) (*entity.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("订单不存在")
		}
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}

	if req.GarmentTypeID != "" {
		order.GarmentTypeID = req.GarmentTypeID
	}
	if req.StyleNo != "" {
		order.StyleNo = req.StyleNo
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, fmt.Errorf("订单数量必须大于0")
		}
		allocated, err := s.breakdowns.SumQuantityByOrderID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("汇总订单明细失败: %w", err)
		}
		if allocated > 0 && allocated != *req.Quantity {
			return nil, fmt.Errorf("订单已有颜色尺码明细合计 %d，请先调整明细再修改数量", allocated)
		}
		order.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice <= 0 {
			return nil, fmt.Errorf("订单单价必须大于0")
		}
		order.UnitPrice = *req.UnitPrice
	}
	if req.DeliveryDate != "" {
		delivery, err := time.Parse("2006-01-02", req.DeliveryDate)
		if err != nil {
			return nil, fmt.Errorf("交期格式错误，应为 2006-01-02")
		}
		order.DeliveryDate = &delivery
	}
	if req.Destination != "" {
		order.Destination = req.Destination
	}
	if req.Notes != "" {
		order.Notes = req.Notes
	}

	order.Amount = float64(order.Quantity) * order.UnitPrice

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("更新订单失败: %w", err)
	}

	if err := s.recalcContractTotal(ctx, order.ContractID); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus 订单状态流转。取消订单时从合同汇总中剔除该单金额。
func (s *OrderService) UpdateStatus(ctx context.Context, id, newStatus string) (*entity.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("订单不存在")
		}
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}

	if !isValidTransition(entity.ValidOrderTransitions, order.Status, newStatus) {
		return nil, fmt.Errorf("订单状态不能从 %s 流转到 %s", order.Status, newStatus)
	}

	order.Status = newStatus
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("更新订单状态失败: %w", err)
	}

	if newStatus == entity.OrderStatusCancelled {
		if err := s.recalcContractTotal(ctx, order.ContractID); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Delete 删除订单，仅待确认状态允许。明细随单删除。
func (s *OrderService) Delete(ctx context.Context, id string) error {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("订单不存在")
		}
		return fmt.Errorf("查询订单失败: %w", err)
	}

	if order.Status != entity.OrderStatusPending {
		return fmt.Errorf("仅待确认状态的订单可删除")
	}

	if err := s.orders.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除订单失败: %w", err)
	}

	return s.recalcContractTotal(ctx, order.ContractID)
}

// recalcContractTotal 按未取消订单重算合同金额汇总
func (s *OrderService) recalcContractTotal(ctx context.Context, contractID string) error {
	total, err := s.orders.SumAmountByContractID(ctx, contractID)
	if err != nil {
		return fmt.Errorf("汇总合同金额失败: %w", err)
	}
	if err := s.contracts.UpdateTotalAmount(ctx, contractID, total); err != nil {
		return fmt.Errorf("回写合同金额失败: %w", err)
	}
	return nil
}

func contractStatusLabel(status string) string {
	switch status {
	case entity.ContractStatusCancelled:
		return "取消"
	case entity.ContractStatusClosed:
		return "关闭"
	default:
		return status
	}
}
