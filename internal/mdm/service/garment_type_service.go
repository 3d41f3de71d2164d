package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/knitware/stitch-erp/internal/mdm/entity"
	"github.com/knitware/stitch-erp/internal/mdm/repository"
	"github.com/knitware/stitch-erp/internal/shared/gauge"
	"github.com/redis/go-redis/v9"
)

const garmentTypeCacheKey = "mdm:garment_types:all"

// GarmentTypeService 款式类型服务
type GarmentTypeService struct {
	repo *repository.GarmentTypeRepository
	rdb  *redis.Client
}

func NewGarmentTypeService(repo *repository.GarmentTypeRepository, rdb *redis.Client) *GarmentTypeService {
	return &GarmentTypeService{repo: repo, rdb: rdb}
}

// CreateGarmentTypeRequest 创建款式类型请求
type CreateGarmentTypeRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	Gauges      string `json:"gauges"` // "12,14" 或 "12 GG,14 GG" 均可
	Description string `json:"description"`
}

// UpdateGarmentTypeRequest 更新款式类型请求
type UpdateGarmentTypeRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Gauges      *string `json:"gauges"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
}

// GarmentTypeView 款式类型视图，附带展示形态的针型
type GarmentTypeView struct {
	entity.GarmentType
	GaugesDisplay string `json:"gauges_display"`
}

// GarmentTypeListResult 款式类型列表结果
type GarmentTypeListResult struct {
	Items      []GarmentTypeView `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

func toView(gt entity.GarmentType) GarmentTypeView {
	return GarmentTypeView{
		GarmentType:   gt,
		GaugesDisplay: gauge.ToDisplay(gt.Gauges),
	}
}

// List 获取款式类型列表
func (s *GarmentTypeService) List(ctx context.Context, page, pageSize int, filters map[string]string) (*GarmentTypeListResult, error) {
	items, total, err := s.repo.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("查询款式类型列表失败: %w", err)
	}

	views := make([]GarmentTypeView, 0, len(items))
	for _, gt := range items {
		views = append(views, toView(gt))
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &GarmentTypeListResult{
		Items:      views,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// ListAll 获取全部启用款式类型（下拉引用，Redis缓存5分钟）
func (s *GarmentTypeService) ListAll(ctx context.Context) ([]GarmentTypeView, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, garmentTypeCacheKey).Result(); err == nil {
			var views []GarmentTypeView
			if json.Unmarshal([]byte(cached), &views) == nil {
				return views, nil
			}
		}
	}

	items, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询款式类型列表失败: %w", err)
	}

	views := make([]GarmentTypeView, 0, len(items))
	for _, gt := range items {
		views = append(views, toView(gt))
	}

	if s.rdb != nil {
		if data, err := json.Marshal(views); err == nil {
			s.rdb.Set(ctx, garmentTypeCacheKey, data, 5*time.Minute)
		}
	}

	return views, nil
}

// Get 获取款式类型详情
func (s *GarmentTypeService) Get(ctx context.Context, id string) (*GarmentTypeView, error) {
	gt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toView(*gt)
	return &view, nil
}

// Create 创建款式类型，针型统一转为存储形态
func (s *GarmentTypeService) Create(ctx context.Context, req *CreateGarmentTypeRequest) (*GarmentTypeView, error) {
	now := time.Now()
	gt := &entity.GarmentType{
		ID:          uuid.New().String()[:32],
		Code:        req.Code,
		Name:        req.Name,
		Category:    req.Category,
		Gauges:      gauge.ToStorage(req.Gauges),
		Description: req.Description,
		Status:      entity.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, gt); err != nil {
		return nil, fmt.Errorf("创建款式类型失败: %w", err)
	}

	s.clearCache(ctx)

	view := toView(*gt)
	return &view, nil
}

// Update 更新款式类型
func (s *GarmentTypeService) Update(ctx context.Context, id string, req *UpdateGarmentTypeRequest) (*GarmentTypeView, error) {
	gt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("款式类型不存在")
	}

	if req.Name != "" {
		gt.Name = req.Name
	}
	if req.Category != "" {
		gt.Category = req.Category
	}
	if req.Gauges != nil {
		gt.Gauges = gauge.ToStorage(*req.Gauges)
	}
	if req.Description != "" {
		gt.Description = req.Description
	}
	if req.Status != "" {
		gt.Status = req.Status
	}
	gt.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, gt); err != nil {
		return nil, fmt.Errorf("更新款式类型失败: %w", err)
	}

	s.clearCache(ctx)

	view := toView(*gt)
	return &view, nil
}

// Delete 删除款式类型
func (s *GarmentTypeService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("款式类型不存在")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除款式类型失败: %w", err)
	}

	s.clearCache(ctx)

	return nil
}

func (s *GarmentTypeService) clearCache(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, garmentTypeCacheKey)
	}
}
