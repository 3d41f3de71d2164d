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

// DeliveryService 交期计划服务
type DeliveryService struct {
	deliveries *repository.DeliveryRepository
	orders     *repository.OrderRepository
}

func NewDeliveryService(deliveries *repository.DeliveryRepository, orders *repository.OrderRepository) *DeliveryService {
	return &DeliveryService{deliveries: deliveries, orders: orders}
}

// CreateDeliveryRequest 创建交期计划请求
type CreateDeliveryRequest struct {
	ShipDate    string `json:"ship_date" binding:"required"` // 格式 2006-01-02
	Destination string `json:"destination"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	Notes       string `json:"notes"`
}

// UpdateDeliveryRequest 更新交期计划请求
type UpdateDeliveryRequest struct {
	ShipDate    string `json:"ship_date"`
	Destination string `json:"destination"`
	Quantity    *int   `json:"quantity"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

// ListByOrder 查询订单的交期计划
func (s *DeliveryService) ListByOrder(ctx context.Context, orderID string) ([]entity.DeliverySchedule, error) {
	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		return nil, err
	}

	items, err := s.deliveries.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("查询交期计划失败: %w", err)
	}
	return items, nil
}

// Create 创建交期计划。各批次数量累计不得超过订单数量。
func (s *DeliveryService) Create(ctx context.Context, orderID string, req *CreateDeliveryRequest) (*entity.DeliverySchedule, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("订单不存在")
		}
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}

	planned, err := s.deliveries.SumQuantityByOrderID(ctx, orderID, "")
	if err != nil {
		return nil, fmt.Errorf("汇总出运数量失败: %w", err)
	}
	if planned+req.Quantity > order.Quantity {
		return nil, fmt.Errorf("出运数量累计 %d 超过订单数量 %d", planned+req.Quantity, order.Quantity)
	}

	shipDate, err := time.Parse("2006-01-02", req.ShipDate)
	if err != nil {
		return nil, fmt.Errorf("出运日期格式错误，应为 2006-01-02")
	}

	count, err := s.deliveries.CountByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("统计交期计划失败: %w", err)
	}

	schedule := &entity.DeliverySchedule{
		ID:          uuid.New().String()[:32],
		OrderID:     orderID,
		ScheduleNo:  fmt.Sprintf("%s-D%02d", order.OrderNo, count+1),
		ShipDate:    &shipDate,
		Destination: req.Destination,
		Quantity:    req.Quantity,
		Status:      entity.DeliveryStatusPlanned,
		Notes:       req.Notes,
	}
	if schedule.Destination == "" {
		schedule.Destination = order.Destination
	}

	if err := s.deliveries.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("创建交期计划失败: %w", err)
	}
	return schedule, nil
}

// Update 更新交期计划，数量变更时重新校验累计上限
func (s *DeliveryService) Update(ctx context.Context, id string, req *UpdateDeliveryRequest) (*entity.DeliverySchedule, error) {
	schedule, err := s.deliveries.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("交期计划不存在")
		}
		return nil, fmt.Errorf("查询交期计划失败: %w", err)
	}

	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, fmt.Errorf("出运数量必须大于0")
		}
		order, err := s.orders.FindByID(ctx, schedule.OrderID)
		if err != nil {
			return nil, fmt.Errorf("查询订单失败: %w", err)
		}
		others, err := s.deliveries.SumQuantityByOrderID(ctx, schedule.OrderID, id)
		if err != nil {
			return nil, fmt.Errorf("汇总出运数量失败: %w", err)
		}
		if others+*req.Quantity > order.Quantity {
			return nil, fmt.Errorf("出运数量累计 %d 超过订单数量 %d", others+*req.Quantity, order.Quantity)
		}
		schedule.Quantity = *req.Quantity
	}

	if req.ShipDate != "" {
		shipDate, err := time.Parse("2006-01-02", req.ShipDate)
		if err != nil {
			return nil, fmt.Errorf("出运日期格式错误，应为 2006-01-02")
		}
		schedule.ShipDate = &shipDate
	}
	if req.Destination != "" {
		schedule.Destination = req.Destination
	}
	if req.Status != "" {
		if !validDeliveryStatus(req.Status) {
			return nil, fmt.Errorf("无效的交期计划状态: %s", req.Status)
		}
		schedule.Status = req.Status
	}
	if req.Notes != "" {
		schedule.Notes = req.Notes
	}

	if err := s.deliveries.Update(ctx, schedule); err != nil {
		return nil, fmt.Errorf("更新交期计划失败: %w", err)
	}
	return schedule, nil
}

// Delete 删除交期计划，已出运的不允许删除
func (s *DeliveryService) Delete(ctx context.Context, id string) error {
	schedule, err := s.deliveries.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("交期计划不存在")
		}
		return fmt.Errorf("查询交期计划失败: %w", err)
	}

	if schedule.Status == entity.DeliveryStatusShipped || schedule.Status == entity.DeliveryStatusDelivered {
		return fmt.Errorf("已出运的交期计划不能删除")
	}

	if err := s.deliveries.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除交期计划失败: %w", err)
	}
	return nil
}

func validDeliveryStatus(status string) bool {
	switch status {
	case entity.DeliveryStatusPlanned, entity.DeliveryStatusReady,
		entity.DeliveryStatusShipped, entity.DeliveryStatusDelivered:
		return true
	}
	return false
}
