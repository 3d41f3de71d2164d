package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/knitware/stitch-erp/internal/catalog/entity"
	"github.com/knitware/stitch-erp/internal/catalog/repository"
)

// FabricService 面料服务
type FabricService struct {
	repo *repository.FabricRepository
}

func NewFabricService(repo *repository.FabricRepository) *FabricService {
	return &FabricService{repo: repo}
}

// CreateFabricRequest 创建面料请求
type CreateFabricRequest struct {
	Code          string  `json:"code" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	GSM           int     `json:"gsm"`
	Composition   string  `json:"composition"`
	WidthCm       float64 `json:"width_cm"`
	Construction  string  `json:"construction"`
	Supplier      string  `json:"supplier"`
	PricePerMeter float64 `json:"price_per_meter"`
	Currency      string  `json:"currency"`
}

// UpdateFabricRequest 更新面料请求
type UpdateFabricRequest struct {
	Name          string   `json:"name"`
	GSM           *int     `json:"gsm"`
	Composition   string   `json:"composition"`
	WidthCm       *float64 `json:"width_cm"`
	Construction  string   `json:"construction"`
	Supplier      string   `json:"supplier"`
	PricePerMeter *float64 `json:"price_per_meter"`
	Currency      string   `json:"currency"`
	Status        string   `json:"status"`
}

// FabricListResult 面料列表结果
type FabricListResult struct {
	Items      []entity.Fabric `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// List 获取面料列表
func (s *FabricService) List(ctx context.Context, page, pageSize int, filters map[string]string) (*FabricListResult, error) {
	items, total, err := s.repo.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("查询面料列表失败: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &FabricListResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get 获取面料详情
func (s *FabricService) Get(ctx context.Context, id string) (*entity.Fabric, error) {
	return s.repo.FindByID(ctx, id)
}

// Create 创建面料
func (s *FabricService) Create(ctx context.Context, req *CreateFabricRequest) (*entity.Fabric, error) {
	now := time.Now()
	fabric := &entity.Fabric{
		ID:            uuid.New().String()[:32],
		Code:          req.Code,
		Name:          req.Name,
		GSM:           req.GSM,
		Composition:   req.Composition,
		WidthCm:       req.WidthCm,
		Construction:  req.Construction,
		Supplier:      req.Supplier,
		PricePerMeter: req.PricePerMeter,
		Currency:      req.Currency,
		Status:        entity.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, fabric); err != nil {
		return nil, fmt.Errorf("创建面料失败: %w", err)
	}

	return fabric, nil
}

// Update 更新面料
func (s *FabricService) Update(ctx context.Context, id string, req *UpdateFabricRequest) (*entity.Fabric, error) {
	fabric, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("面料不存在")
	}

	if req.Name != "" {
		fabric.Name = req.Name
	}
	if req.GSM != nil {
		fabric.GSM = *req.GSM
	}
	if req.Composition != "" {
		fabric.Composition = req.Composition
	}
	if req.WidthCm != nil {
		fabric.WidthCm = *req.WidthCm
	}
	if req.Construction != "" {
		fabric.Construction = req.Construction
	}
	if req.Supplier != "" {
		fabric.Supplier = req.Supplier
	}
	if req.PricePerMeter != nil {
		fabric.PricePerMeter = *req.PricePerMeter
	}
	if req.Currency != "" {
		fabric.Currency = req.Currency
	}
	if req.Status != "" {
		fabric.Status = req.Status
	}
	fabric.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, fabric); err != nil {
		return nil, fmt.Errorf("更新面料失败: %w", err)
	}

	return fabric, nil
}

// Delete 删除面料
func (s *FabricService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("面料不存在")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除面料失败: %w", err)
	}

	return nil
}
