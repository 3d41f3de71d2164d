package repository

import (
	"context"
	"errors"

	"github.com/knitware/stitch-erp/internal/catalog/entity"
	"github.com/knitware/stitch-erp/internal/shared/productcode"
	"gorm.io/gorm"
)

// CatalogItemRepository 通用物品仓库
type CatalogItemRepository struct {
	db *gorm.DB
}

func NewCatalogItemRepository(db *gorm.DB) *CatalogItemRepository {
	return &CatalogItemRepository{db: db}
}

// FindAll 查询物品列表
func (r *CatalogItemRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.CatalogItem, int64, error) {
	var items []entity.CatalogItem
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.CatalogItem{})

	if search := filters["search"]; search != "" {
		query = query.Where("product_id LIKE ? OR name LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if category := filters["category"]; category != "" {
		query = query.Where("category = ?", category)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// FindByID 根据ID查找物品
func (r *CatalogItemRepository) FindByID(ctx context.Context, id string) (*entity.CatalogItem, error) {
	var item entity.CatalogItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// AllProductIDs 取全量product_id，供流水号推导
func (r *CatalogItemRepository) AllProductIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&entity.CatalogItem{}).
		Pluck("product_id", &ids).Error
	return ids, err
}

// CreateWithGeneratedID 在同一事务内扫描现有product_id并分配下一个流水号。
// product_id上的唯一索引兜底并发分配：撞车时Create报唯一冲突，由调用方重试。
func (r *CatalogItemRepository) CreateWithGeneratedID(ctx context.Context, item *entity.CatalogItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&entity.CatalogItem{}).Pluck("product_id", &ids).Error; err != nil {
			return err
		}
		item.ProductID = productcode.Generate(item.Name, item.Category, ids)
		return tx.Create(item).Error
	})
}

// Update 更新物品
func (r *CatalogItemRepository) Update(ctx context.Context, item *entity.CatalogItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete 删除物品
func (r *CatalogItemRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.CatalogItem{}).Error
}
