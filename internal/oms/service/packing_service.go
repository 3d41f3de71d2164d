package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/knitware/stitch-erp/internal/oms/entity"
	"github.com/knitware/stitch-erp/internal/oms/repository"
	"github.com/knitware/stitch-erp/internal/shared/carton"
)

// PackingService 装箱明细服务
type PackingService struct {
	packings *repository.PackingRepository
	orders   *repository.OrderRepository
}

func NewPackingService(packings *repository.PackingRepository, orders *repository.OrderRepository) *PackingService {
	return &PackingService{packings: packings, orders: orders}
}

// CreatePackingRequest 创建装箱明细请求。CBM不接受客户端传值。
type CreatePackingRequest struct {
	CartonNo      string  `json:"carton_no" binding:"required"`
	LengthCm      float64 `json:"length_cm"`
	WidthCm       float64 `json:"width_cm"`
	HeightCm      float64 `json:"height_cm"`
	GrossWeightKg float64 `json:"gross_weight_kg"`
	NetWeightKg   float64 `json:"net_weight_kg"`
	QtyPerCarton  int     `json:"qty_per_carton" binding:"required,gt=0"`
	CartonCount   int     `json:"carton_count" binding:"required,gt=0"`
	Notes         string  `json:"notes"`
}

// UpdatePackingRequest 更新装箱明细请求
type UpdatePackingRequest struct {
	CartonNo      string   `json:"carton_no"`
	LengthCm      *float64 `json:"length_cm"`
	WidthCm       *float64 `json:"width_cm"`
	HeightCm      *float64 `json:"height_cm"`
	GrossWeightKg *float64 `json:"gross_weight_kg"`
	NetWeightKg   *float64 `json:"net_weight_kg"`
	QtyPerCarton  *int     `json:"qty_per_carton"`
	CartonCount   *int     `json:"carton_count"`
	Notes         string   `json:"notes"`
}

// PackingDetailView 装箱明细视图，附带4位小数的CBM展示串
type PackingDetailView struct {
	entity.PackingDetail
	CBMDisplay string `json:"cbm_display"`
}

// PackingSummary 订单装箱汇总
type PackingSummary struct {
	Items         []PackingDetailView `json:"items"`
	TotalCartons  int                 `json:"total_cartons"`
	TotalQuantity int                 `json:"total_quantity"`
	TotalCBM      float64             `json:"total_cbm"`
	TotalCBMText  string              `json:"total_cbm_text"`
	TotalGrossKg  float64             `json:"total_gross_kg"`
	TotalNetKg    float64             `json:"total_net_kg"`
}

// ListByOrder 查询订单装箱明细及汇总
func (s *PackingService) ListByOrder(ctx context.Context, orderID string) (*PackingSummary, error) {
	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		return nil, err
	}

	items, err := s.packings.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("查询装箱明细失败: %w", err)
	}
	return buildPackingSummary(items), nil
}

// Create 创建装箱明细。CBM由服务端按 长×宽×高/1000000 计算。
func (s *PackingService) Create(ctx context.Context, orderID string, req *CreatePackingRequest) (*PackingDetailView, error) {
	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("订单不存在")
		}
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}

	detail := &entity.PackingDetail{
		ID:            uuid.New().String()[:32],
		OrderID:       orderID,
		CartonNo:      req.CartonNo,
		LengthCm:      req.LengthCm,
		WidthCm:       req.WidthCm,
		HeightCm:      req.HeightCm,
		GrossWeightKg: req.GrossWeightKg,
		NetWeightKg:   req.NetWeightKg,
		QtyPerCarton:  req.QtyPerCarton,
		CartonCount:   req.CartonCount,
		Notes:         req.Notes,
	}
	applyCBM(detail)

	if err := s.packings.Create(ctx, detail); err != nil {
		return nil, fmt.Errorf("创建装箱明细失败: %w", err)
	}
	view := newPackingView(*detail)
	return &view, nil
}

// Update 更新装箱明细，箱规变更时CBM重算
func (s *PackingService) Update(ctx context.Context, id string, req *UpdatePackingRequest) (*PackingDetailView, error) {
	detail, err := s.packings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("装箱明细不存在")
		}
		return nil, fmt.Errorf("查询装箱明细失败: %w", err)
	}

	if req.CartonNo != "" {
		detail.CartonNo = req.CartonNo
	}
	if req.LengthCm != nil {
		detail.LengthCm = *req.LengthCm
	}
	if req.WidthCm != nil {
		detail.WidthCm = *req.WidthCm
	}
	if req.HeightCm != nil {
		detail.HeightCm = *req.HeightCm
	}
	if req.GrossWeightKg != nil {
		detail.GrossWeightKg = *req.GrossWeightKg
	}
	if req.NetWeightKg != nil {
		detail.NetWeightKg = *req.NetWeightKg
	}
	if req.QtyPerCarton != nil {
		if *req.QtyPerCarton <= 0 {
			return nil, fmt.Errorf("每箱数量必须大于0")
		}
		detail.QtyPerCarton = *req.QtyPerCarton
	}
	if req.CartonCount != nil {
		if *req.CartonCount <= 0 {
			return nil, fmt.Errorf("箱数必须大于0")
		}
		detail.CartonCount = *req.CartonCount
	}
	if req.Notes != "" {
		detail.Notes = req.Notes
	}
	applyCBM(detail)

	if err := s.packings.Update(ctx, detail); err != nil {
		return nil, fmt.Errorf("更新装箱明细失败: %w", err)
	}
	view := newPackingView(*detail)
	return &view, nil
}

// Delete 删除装箱明细
func (s *PackingService) Delete(ctx context.Context, id string) error {
	if _, err := s.packings.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("装箱明细不存在")
		}
		return fmt.Errorf("查询装箱明细失败: %w", err)
	}
	if err := s.packings.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除装箱明细失败: %w", err)
	}
	return nil
}

// applyCBM 按箱规重算单箱CBM。尺寸不全时记0，展示层输出 "0.0000"。
func applyCBM(detail *entity.PackingDetail) {
	if detail.LengthCm <= 0 || detail.WidthCm <= 0 || detail.HeightCm <= 0 {
		detail.CBM = 0
		return
	}
	detail.CBM = carton.CBM(detail.LengthCm, detail.WidthCm, detail.HeightCm)
}

func newPackingView(detail entity.PackingDetail) PackingDetailView {
	return PackingDetailView{
		PackingDetail: detail,
		CBMDisplay:    carton.FormatCBM(detail.LengthCm, detail.WidthCm, detail.HeightCm),
	}
}

func buildPackingSummary(items []entity.PackingDetail) *PackingSummary {
	summary := &PackingSummary{Items: make([]PackingDetailView, 0, len(items))}
	for _, item := range items {
		summary.Items = append(summary.Items, newPackingView(item))
		summary.TotalCartons += item.CartonCount
		summary.TotalQuantity += item.QtyPerCarton * item.CartonCount
		summary.TotalCBM += item.CBM * float64(item.CartonCount)
		summary.TotalGrossKg += item.GrossWeightKg * float64(item.CartonCount)
		summary.TotalNetKg += item.NetWeightKg * float64(item.CartonCount)
	}
	summary.TotalCBMText = fmt.Sprintf("%.4f", summary.TotalCBM)
	return summary
}
