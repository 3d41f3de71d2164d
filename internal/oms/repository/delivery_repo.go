package repository

import (
	"context"
	"errors"

	"github.com/knitware/stitch-erp/internal/oms/entity"
	"gorm.io/gorm"
)

// DeliveryRepository 出运计划仓库
type DeliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

// FindByOrderID 查找订单的出运计划
func (r *DeliveryRepository) FindByOrderID(ctx context.Context, orderID string) ([]entity.DeliverySchedule, error) {
	var items []entity.DeliverySchedule
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("ship_date ASC, created_at ASC").
		Find(&items).Error
	return items, err
}

// FindByID 根据ID查找出运计划
func (r *DeliveryRepository) FindByID(ctx context.Context, id string) (*entity.DeliverySchedule, error) {
	var schedule entity.DeliverySchedule
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &schedule, nil
}

// SumQuantityByOrderID 汇总订单出运数量，excludeID用于更新时排除自身
func (r *DeliveryRepository) SumQuantityByOrderID(ctx context.Context, orderID, excludeID string) (int, error) {
	var total int
	query := r.db.WithContext(ctx).
		Model(&entity.DeliverySchedule{}).
		Where("order_id = ?", orderID)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Select("COALESCE(SUM(quantity), 0)").Scan(&total).Error
	return total, err
}

// CountByOrderID 统计订单出运计划数
func (r *DeliveryRepository) CountByOrderID(ctx context.Context, orderID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.DeliverySchedule{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	return count, err
}

// Create 创建出运计划
func (r *DeliveryRepository) Create(ctx context.Context, schedule *entity.DeliverySchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

// Update 更新出运计划
func (r *DeliveryRepository) Update(ctx context.Context, schedule *entity.DeliverySchedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

// Delete 删除出运计划
func (r *DeliveryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.DeliverySchedule{}).Error
}
