package repository

import (
	"context"
	"errors"

	"github.com/knitware/stitch-erp/internal/oms/entity"
	"gorm.io/gorm"
)

// PackingRepository 装箱明细仓库
type PackingRepository struct {
	db *gorm.DB
}

func NewPackingRepository(db *gorm.DB) *PackingRepository {
	return &PackingRepository{db: db}
}

// FindByOrderID 查找订单的装箱明细
func (r *PackingRepository) FindByOrderID(ctx context.Context, orderID string) ([]entity.PackingDetail, error) {
	var items []entity.PackingDetail
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("carton_no ASC, created_at ASC").
		Find(&items).Error
	return items, err
}

// FindByID 根据ID查找装箱明细
func (r *PackingRepository) FindByID(ctx context.Context, id string) (*entity.PackingDetail, error) {
	var detail entity.PackingDetail
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &detail, nil
}

// Create 创建装箱明细
func (r *PackingRepository) Create(ctx context.Context, detail *entity.PackingDetail) error {
	return r.db.WithContext(ctx).Create(detail).Error
}

// Update 更新装箱明细
func (r *PackingRepository) Update(ctx context.Context, detail *entity.PackingDetail) error {
	return r.db.WithContext(ctx).Save(detail).Error
}

// Delete 删除装箱明细
func (r *PackingRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.PackingDetail{}).Error
}
