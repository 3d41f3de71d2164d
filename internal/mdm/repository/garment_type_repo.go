package repository

import (
	"context"
	"errors"

	"github.com/knitware/stitch-erp/internal/mdm/entity"
	"gorm.io/gorm"
)

// GarmentTypeRepository 款式类型仓库
type GarmentTypeRepository struct {
	db *gorm.DB
}

func NewGarmentTypeRepository(db *gorm.DB) *GarmentTypeRepository {
	return &GarmentTypeRepository{db: db}
}

// FindAll 查询款式类型列表
func (r *GarmentTypeRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.GarmentType, int64, error) {
	var items []entity.GarmentType
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.GarmentType{})

	if search := filters["search"]; search != "" {
		query = query.Where("code LIKE ? OR name LIKE ?", "%"+search+"%", "%"+search+"%")
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

// FindActive 查询全部启用款式类型
func (r *GarmentTypeRepository) FindActive(ctx context.Context) ([]entity.GarmentType, error) {
	var items []entity.GarmentType
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.StatusActive).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

// FindByID 根据ID查找款式类型
func (r *GarmentTypeRepository) FindByID(ctx context.Context, id string) (*entity.GarmentType, error) {
	var gt entity.GarmentType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&gt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &gt, nil
}

// Create 创建款式类型
func (r *GarmentTypeRepository) Create(ctx context.Context, gt *entity.GarmentType) error {
	return r.db.WithContext(ctx).Create(gt).Error
}

// Update 更新款式类型
func (r *GarmentTypeRepository) Update(ctx context.Context, gt *entity.GarmentType) error {
	return r.db.WithContext(ctx).Save(gt).Error
}

// Delete 删除款式类型
func (r *GarmentTypeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.GarmentType{}).Error
}
