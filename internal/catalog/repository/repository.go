package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories 物料档案仓库集合
type Repositories struct {
	Yarn        *YarnRepository
	Fabric      *FabricRepository
	CatalogItem *CatalogItemRepository
}

// NewRepositories 创建物料档案仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Yarn:        NewYarnRepository(db),
		Fabric:      NewFabricRepository(db),
		CatalogItem: NewCatalogItemRepository(db),
	}
}
