package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/knitware/stitch-erp/internal/catalog/entity"
	"github.com/knitware/stitch-erp/internal/catalog/repository"
)

// YarnService 纱线服务
type YarnService struct {
	repo *repository.YarnRepository
}

func NewYarnService(repo *repository.YarnRepository) *YarnService {
	return &YarnService{repo: repo}
}

// CreateYarnRequest 创建纱线请求
type CreateYarnRequest struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Count       string  `json:"count"`
	Composition string  `json:"composition"`
	Supplier    string  `json:"supplier"`
	PricePerKg  float64 `json:"price_per_kg"`
	Currency    string  `json:"currency"`
}

// UpdateYarnRequest 更新纱线请求
type UpdateYarnRequest struct {
	Name        string   `json:"name"`
	Count       string   `json:"count"`
	Composition string   `json:"composition"`
	Supplier    string   `json:"supplier"`
	PricePerKg  *float64 `json:"price_per_kg"`
	Currency    string   `json:"currency"`
	Status      string   `json:"status"`
}

// YarnListResult 纱线列表结果
type YarnListResult struct {
	Items      []entity.Yarn `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

// List 获取纱线列表
func (s *YarnService) List(ctx context.Context, page, pageSize int, filters map[string]string) (*YarnListResult, error) {
	items, total, err := s.repo.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("查询纱线列表失败: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &YarnListResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get 获取纱线详情
func (s *YarnService) Get(ctx context.Context, id string) (*entity.Yarn, error) {
	return s.repo.FindByID(ctx, id)
}

// Create 创建纱线
func (s *YarnService) Create(ctx context.Context, req *CreateYarnRequest) (*entity.Yarn, error) {
	now := time.Now()
	yarn := &entity.Yarn{
		ID:          uuid.New().String()[:32],
		Code:        req.Code,
		Name:        req.Name,
		Count:       req.Count,
		Composition: req.Composition,
		Supplier:    req.Supplier,
		PricePerKg:  req.PricePerKg,
		Currency:    req.Currency,
		Status:      entity.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, yarn); err != nil {
		return nil, fmt.Errorf("创建纱线失败: %w", err)
	}

	return yarn, nil
}

// Update 更新纱线
func (s *YarnService) Update(ctx context.Context, id string, req *UpdateYarnRequest) (*entity.Yarn, error) {
	yarn, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("纱线不存在")
	}

	if req.Name != "" {
		yarn.Name = req.Name
	}
	if req.Count != "" {
		yarn.Count = req.Count
	}
	if req.Composition != "" {
		yarn.Composition = req.Composition
	}
	if req.Supplier != "" {
		yarn.Supplier = req.Supplier
	}
	if req.PricePerKg != nil {
		yarn.PricePerKg = *req.PricePerKg
	}
	if req.Currency != "" {
		yarn.Currency = req.Currency
	}
	if req.Status != "" {
		yarn.Status = req.Status
	}
	yarn.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, yarn); err != nil {
		return nil, fmt.Errorf("更新纱线失败: %w", err)
	}

	return yarn, nil
}

// Delete 删除纱线
func (s *YarnService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("纱线不存在")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除纱线失败: %w", err)
	}

	return nil
}
