package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/knitware/stitch-erp/internal/mdm/entity"
	"github.com/knitware/stitch-erp/internal/mdm/repository"
	"github.com/redis/go-redis/v9"
)

const sizeCacheKey = "mdm:sizes:all"

// SizeService 尺码服务
type SizeService struct {
	repo *repository.SizeRepository
	rdb  *redis.Client
}

func NewSizeService(repo *repository.SizeRepository, rdb *redis.Client) *SizeService {
	return &SizeService{repo: repo, rdb: rdb}
}

// CreateSizeRequest 创建尺码请求
type CreateSizeRequest struct {
	Code      string `json:"code" binding:"required"`
	Name      string `json:"name" binding:"required"`
	SizeGroup string `json:"size_group"`
	SortOrder int    `json:"sort_order"`
}

// UpdateSizeRequest 更新尺码请求
type UpdateSizeRequest struct {
	Name      string `json:"name"`
	SizeGroup string `json:"size_group"`
	SortOrder *int   `json:"sort_order"`
	Status    string `json:"status"`
}

// SizeListResult 尺码列表结果
type SizeListResult struct {
	Items      []entity.Size `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

// List 获取尺码列表
func (s *SizeService) List(ctx context.Context, page, pageSize int, filters map[string]string) (*SizeListResult, error) {
	items, total, err := s.repo.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("查询尺码列表失败: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &SizeListResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// ListAll 获取全部启用尺码（下拉引用，Redis缓存5分钟）
func (s *SizeService) ListAll(ctx context.Context) ([]entity.Size, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, sizeCacheKey).Result(); err == nil {
			var items []entity.Size
			if json.Unmarshal([]byte(cached), &items) == nil {
				return items, nil
			}
		}
	}

	items, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询尺码列表失败: %w", err)
	}

	if s.rdb != nil {
		if data, err := json.Marshal(items); err == nil {
			s.rdb.Set(ctx, sizeCacheKey, data, 5*time.Minute)
		}
	}

	return items, nil
}

// Get 获取尺码详情
func (s *SizeService) Get(ctx context.Context, id string) (*entity.Size, error) {
	return s.repo.FindByID(ctx, id)
}

// Create 创建尺码
func (s *SizeService) Create(ctx context.Context, req *CreateSizeRequest) (*entity.Size, error) {
	now := time.Now()
	size := &entity.Size{
		ID:        uuid.New().String()[:32],
		Code:      req.Code,
		Name:      req.Name,
		SizeGroup: req.SizeGroup,
		SortOrder: req.SortOrder,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, size); err != nil {
		return nil, fmt.Errorf("创建尺码失败: %w", err)
	}

	s.clearCache(ctx)

	return size, nil
}

// Update 更新尺码
func (s *SizeService) Update(ctx context.Context, id string, req *UpdateSizeRequest) (*entity.Size, error) {
	size, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("尺码不存在")
	}

	if req.Name != "" {
		size.Name = req.Name
	}
	if req.SizeGroup != "" {
		size.SizeGroup = req.SizeGroup
	}
	if req.SortOrder != nil {
		size.SortOrder = *req.SortOrder
	}
	if req.Status != "" {
		size.Status = req.Status
	}
	size.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, size); err != nil {
		return nil, fmt.Errorf("更新尺码失败: %w", err)
	}

	s.clearCache(ctx)

	return size, nil
}

// Delete 删除尺码
func (s *SizeService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("尺码不存在")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除尺码失败: %w", err)
	}

	s.clearCache(ctx)

	return nil
}

func (s *SizeService) clearCache(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, sizeCacheKey)
	}
}
