package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/knitware/stitch-erp/internal/oms/entity"
	"github.com/knitware/stitch-erp/internal/oms/repository"
)

// BreakdownService 订单颜色尺码分解服务
type BreakdownService struct {
	breakdowns *repository.BreakdownRepository
	orders     *repository.OrderRepository
}

func NewBreakdownService(breakdowns *repository.BreakdownRepository, orders *repository.OrderRepository) *BreakdownService {
	return &BreakdownService{breakdowns: breakdowns, orders: orders}
}

// BreakdownLine 单行颜色尺码数量
type BreakdownLine struct {
	ColorID   string `json:"color_id" binding:"required"`
	ColorName string `json:"color_name" binding:"required"`
	SizeID    string `json:"size_id" binding:"required"`
	SizeName  string `json:"size_name" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// ReplaceBreakdownRequest 整单替换颜色尺码明细请求
type ReplaceBreakdownRequest struct {
	Lines []BreakdownLine `json:"lines" binding:"required"`
}

// ListByOrder 查询订单的颜色尺码明细
func (s *BreakdownService) ListByOrder(ctx context.Context, orderID string) ([]entity.OrderBreakdown, error) {
	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		return nil, err
	}

	items, err := s.breakdowns.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("查询订单明细失败: %w", err)
	}
	return items, nil
}

// Replace 整单替换颜色尺码明细。明细数量合计必须等于订单数量，
// 同一颜色尺码组合不允许重复出现。
func (s *BreakdownService) Replace(ctx context.Context, orderID string, req *ReplaceBreakdownRequest) ([]entity.OrderBreakdown, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("订单不存在")
		}
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}

	seen := make(map[string]bool, len(req.Lines))
	sum := 0
	items := make([]entity.OrderBreakdown, 0, len(req.Lines))
	for i, line := range req.Lines {
		key := line.ColorID + "/" + line.SizeID
		if seen[key] {
			return nil, fmt.Errorf("第%d行: 颜色 %s 尺码 %s 重复", i+1, line.ColorName, line.SizeName)
		}
		seen[key] = true
		sum += line.Quantity

		items = append(items, entity.OrderBreakdown{
			ID:        uuid.New().String()[:32],
			OrderID:   orderID,
			ColorID:   line.ColorID,
			ColorName: line.ColorName,
			SizeID:    line.SizeID,
			SizeName:  line.SizeName,
			Quantity:  line.Quantity,
		})
	}

	if sum != order.Quantity {
		return nil, fmt.Errorf("明细数量合计 %d 与订单数量 %d 不一致", sum, order.Quantity)
	}

	if err := s.breakdowns.ReplaceForOrder(ctx, orderID, items); err != nil {
		return nil, fmt.Errorf("保存订单明细失败: %w", err)
	}

	saved, err := s.breakdowns.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("查询订单明细失败: %w", err)
	}
	return saved, nil
}
