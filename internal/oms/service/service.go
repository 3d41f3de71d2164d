package service

import (
	"github.com/knitware/stitch-erp/internal/oms/repository"
)

// Services 订单域服务集合
type Services struct {
	Contract  *ContractService
	Order     *OrderService
	Breakdown *BreakdownService
	Delivery  *DeliveryService
	Packing   *PackingService
	Export    *ExportService
}

// NewServices 创建订单域服务集合
func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		Contract:  NewContractService(repos.Contract, repos.Order),
		Order:     NewOrderService(repos.Order, repos.Contract, repos.Breakdown),
		Breakdown: NewBreakdownService(repos.Breakdown, repos.Order),
		Delivery:  NewDeliveryService(repos.Delivery, repos.Order),
		Packing:   NewPackingService(repos.Packing, repos.Order),
		Export:    NewExportService(repos.Order, repos.Breakdown, repos.Packing),
	}
}
