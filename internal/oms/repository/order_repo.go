package repository

import (
	"context"
	"errors"

	"github.com/knitware/stitch-erp/internal/oms/entity"
	"gorm.io/gorm"
)

// OrderRepository 订单仓库
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// FindAll 查询订单列表
func (r *OrderRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Order, int64, error) {
	var items []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{})

	if search := filters["search"]; search != "" {
		query = query.Where("order_no LIKE ? OR style_no LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if contractID := filters["contract_id"]; contractID != "" {
		query = query.Where("contract_id = ?", contractID)
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

// FindByID 根据ID查找订单
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByContractID 查找合同下全部订单
func (r *OrderRepository) FindByContractID(ctx context.Context, contractID string) ([]entity.Order, error) {
	var items []entity.Order
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

// CountByContractID 统计合同下订单数（含已取消，序号只增不减）
func (r *OrderRepository) CountByContractID(ctx context.Context, contractID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Order{}).
		Where("contract_id = ?", contractID).
		Count(&count).Error
	return count, err
}

// SumAmountByContractID 汇总合同下未取消订单金额
func (r *OrderRepository) SumAmountByContractID(ctx context.Context, contractID string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&entity.Order{}).
		Where("contract_id = ? AND status <> ?", contractID, entity.OrderStatusCancelled).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// Create 创建订单
func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// Update 更新订单
func (r *OrderRepository) Update(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// Delete 删除订单及明细
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&entity.OrderBreakdown{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&entity.DeliverySchedule{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&entity.PackingDetail{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Order{}).Error
	})
}
