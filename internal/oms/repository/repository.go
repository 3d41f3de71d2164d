package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories 订单域仓库集合
type Repositories struct {
	Contract  *ContractRepository
	Order     *OrderRepository
	Breakdown *BreakdownRepository
	Delivery  *DeliveryRepository
	Packing   *PackingRepository
}

// NewRepositories 创建订单域仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Contract:  NewContractRepository(db),
		Order:     NewOrderRepository(db),
		Breakdown: NewBreakdownRepository(db),
		Delivery:  NewDeliveryRepository(db),
		Packing:   NewPackingRepository(db),
	}
}
