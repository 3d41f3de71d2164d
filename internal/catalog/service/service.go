package service

import (
	"github.com/knitware/stitch-erp/internal/catalog/repository"
)

// Services 物料档案服务集合
type Services struct {
	Yarn        *YarnService
	Fabric      *FabricService
	CatalogItem *CatalogItemService
}

// NewServices 创建物料档案服务集合
func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		Yarn:        NewYarnService(repos.Yarn),
		Fabric:      NewFabricService(repos.Fabric),
		CatalogItem: NewCatalogItemService(repos.CatalogItem),
	}
}
