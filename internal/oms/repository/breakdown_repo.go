package repository

import (
	"context"

	"github.com/knitware/stitch-erp/internal/oms/entity"
	"gorm.io/gorm"
)

// BreakdownRepository 颜色尺码明细仓库
type BreakdownRepository struct {
	db *gorm.DB
}

func NewBreakdownRepository(db *gorm.DB) *BreakdownRepository {
	return &BreakdownRepository{db: db}
}

// FindByOrderID 查找订单的颜色尺码明细
func (r *BreakdownRepository) FindByOrderID(ctx context.Context, orderID string) ([]entity.OrderBreakdown, error) {
	var items []entity.OrderBreakdown
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("color_name ASC, size_name ASC").
		Find(&items).Error
	return items, err
}

// ReplaceForOrder 整单替换颜色尺码明细（先删后建，同一事务）
func (r *BreakdownRepository) ReplaceForOrder(ctx context.Context, orderID string, items []entity.OrderBreakdown) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&entity.OrderBreakdown{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.CreateInBatches(items, 100).Error
	})
}

// SumQuantityByOrderID 汇总订单明细数量
func (r *BreakdownRepository) SumQuantityByOrderID(ctx context.Context, orderID string) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Model(&entity.OrderBreakdown{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}
