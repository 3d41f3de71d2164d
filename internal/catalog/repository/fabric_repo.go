package repository

import (
	"context"
	"errors"

	"github.com/knitware/stitch-erp/internal/catalog/entity"
	"gorm.io/gorm"
)

// FabricRepository 面料仓库
type FabricRepository struct {
	db *gorm.DB
}

func NewFabricRepository(db *gorm.DB) *FabricRepository {
	return &FabricRepository{db: db}
}

// FindAll 查询面料列表
func (r *FabricRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Fabric, int64, error) {
	var items []entity.Fabric
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Fabric{})

	if search := filters["search"]; search != "" {
		query = query.Where("code LIKE ? OR name LIKE ? OR composition LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}
	if construction := filters["construction"]; construction != "" {
		query = query.Where("construction = ?", construction)
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

// FindByID 根据ID查找面料
func (r *FabricRepository) FindByID(ctx context.Context, id string) (*entity.Fabric, error) {
	var fabric entity.Fabric
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&fabric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &fabric, nil
}

// Create 创建面料
func (r *FabricRepository) Create(ctx context.Context, fabric *entity.Fabric) error {
	return r.db.WithContext(ctx).Create(fabric).Error
}

// Update 更新面料
func (r *FabricRepository) Update(ctx context.Context, fabric *entity.Fabric) error {
	return r.db.WithContext(ctx).Save(fabric).Error
}

// Delete 删除面料
func (r *FabricRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Fabric{}).Error
}
