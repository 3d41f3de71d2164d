package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories 主数据仓库集合
type Repositories struct {
	Color       *ColorRepository
	Size        *SizeRepository
	GarmentType *GarmentTypeRepository
}

// NewRepositories 创建主数据仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Color:       NewColorRepository(db),
		Size:        NewSizeRepository(db),
		GarmentType: NewGarmentTypeRepository(db),
	}
}
