package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/knitware/stitch-erp/internal/catalog/entity"
	"github.com/knitware/stitch-erp/internal/catalog/repository"
	"github.com/knitware/stitch-erp/internal/shared/productcode"
	"gorm.io/gorm"
)

// CatalogItemService 通用物品服务
type CatalogItemService struct {
	repo *repository.CatalogItemRepository
}

func NewCatalogItemService(repo *repository.CatalogItemRepository) *CatalogItemService {
	return &CatalogItemService{repo: repo}
}

// CreateCatalogItemRequest 创建物品请求。product_id由服务端分配，不接受客户端传入。
type CreateCatalogItemRequest struct {
	Name      string  `json:"name" binding:"required"`
	Category  string  `json:"category" binding:"required"`
	Spec      string  `json:"spec"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price"`
	Currency  string  `json:"currency"`
	Supplier  string  `json:"supplier"`
}

// UpdateCatalogItemRequest 更新物品请求
type UpdateCatalogItemRequest struct {
	Name      string   `json:"name"`
	Spec      string   `json:"spec"`
	Unit      string   `json:"unit"`
	UnitPrice *float64 `json:"unit_price"`
	Currency  string   `json:"currency"`
	Supplier  string   `json:"supplier"`
	Status    string   `json:"status"`
}

// PreviewIDRequest 预览产品ID请求
type PreviewIDRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
}

// CatalogItemListResult 物品列表结果
type CatalogItemListResult struct {
	Items      []entity.CatalogItem `json:"items"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int                  `json:"total_pages"`
}

// List 获取物品列表
func (s *CatalogItemService) List(ctx context.Context, page, pageSize int, filters map[string]string) (*CatalogItemListResult, error) {
	items, total, err := s.repo.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("查询物品列表失败: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &CatalogItemListResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get 获取物品详情
func (s *CatalogItemService) Get(ctx context.Context, id string) (*entity.CatalogItem, error) {
	return s.repo.FindByID(ctx, id)
}

// PreviewID 预览下一个产品ID。仅供表单预填，以创建时实际分配为准。
func (s *CatalogItemService) PreviewID(ctx context.Context, req *PreviewIDRequest) (string, error) {
	if !entity.ValidItemCategories[req.Category] {
		return "", fmt.Errorf("无效的物品类目: %s", req.Category)
	}

	ids, err := s.repo.AllProductIDs(ctx)
	if err != nil {
		return "", fmt.Errorf("查询产品ID失败: %w", err)
	}

	return productcode.Generate(req.Name, req.Category, ids), nil
}

// Create 创建物品，产品ID在事务内分配
func (s *CatalogItemService) Create(ctx context.Context, req *CreateCatalogItemRequest) (*entity.CatalogItem, error) {
	if !entity.ValidItemCategories[req.Category] {
		return nil, fmt.Errorf("无效的物品类目: %s", req.Category)
	}

	now := time.Now()
	item := &entity.CatalogItem{
		ID:        uuid.New().String()[:32],
		Name:      req.Name,
		Category:  req.Category,
		Spec:      req.Spec,
		Unit:      req.Unit,
		UnitPrice: req.UnitPrice,
		Currency:  req.Currency,
		Supplier:  req.Supplier,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// 并发分配撞上唯一索引时重扫一次
	if err := s.repo.CreateWithGeneratedID(ctx, item); err != nil {
		if !isDuplicateKeyErr(err) {
			return nil, fmt.Errorf("创建物品失败: %w", err)
		}
		if err := s.repo.CreateWithGeneratedID(ctx, item); err != nil {
			return nil, fmt.Errorf("创建物品失败: %w", err)
		}
	}

	return item, nil
}

// Update 更新物品。产品ID一经分配不随改名变化。
func (s *CatalogItemService) Update(ctx context.Context, id string, req *UpdateCatalogItemRequest) (*entity.CatalogItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("物品不存在")
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Spec != "" {
		item.Spec = req.Spec
	}
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}
	if req.Currency != "" {
		item.Currency = req.Currency
	}
	if req.Supplier != "" {
		item.Supplier = req.Supplier
	}
	if req.Status != "" {
		item.Status = req.Status
	}
	item.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("更新物品失败: %w", err)
	}

	return item, nil
}

// Delete 删除物品
func (s *CatalogItemService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("物品不存在")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除物品失败: %w", err)
	}

	return nil
}

func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
