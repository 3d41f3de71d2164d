package repository

import (
	"context"
	"errors"

	"github.com/knitware/stitch-erp/internal/oms/entity"
	"gorm.io/gorm"
)

// ContractRepository 销售合同仓库
type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// FindAll 查询合同列表
func (r *ContractRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.SalesContract, int64, error) {
	var items []entity.SalesContract
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.SalesContract{})

	if search := filters["search"]; search != "" {
		query = query.Where("contract_no LIKE ? OR buyer LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if buyer := filters["buyer"]; buyer != "" {
		query = query.Where("buyer = ?", buyer)
	}
	if season := filters["season"]; season != "" {
		query = query.Where("season = ?", season)
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

// FindByID 根据ID查找合同
func (r *ContractRepository) FindByID(ctx context.Context, id string) (*entity.SalesContract, error) {
	var contract entity.SalesContract
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &contract, nil
}

// FindByContractNo 根据合同号查找合同
func (r *ContractRepository) FindByContractNo(ctx context.Context, contractNo string) (*entity.SalesContract, error) {
	var contract entity.SalesContract
	err := r.db.WithContext(ctx).Where("contract_no = ?", contractNo).First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &contract, nil
}

// Create 创建合同
func (r *ContractRepository) Create(ctx context.Context, contract *entity.SalesContract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

// Update 更新合同
func (r *ContractRepository) Update(ctx context.Context, contract *entity.SalesContract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

// UpdateTotalAmount 回写合同订单金额汇总
func (r *ContractRepository) UpdateTotalAmount(ctx context.Context, id string, total float64) error {
	return r.db.WithContext(ctx).
		Model(&entity.SalesContract{}).
		Where("id = ?", id).
		Update("total_amount", total).Error
}

// Delete 删除合同
func (r *ContractRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.SalesContract{}).Error
}
