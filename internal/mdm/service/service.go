package service

import (
	"github.com/knitware/stitch-erp/internal/mdm/repository"
	"github.com/redis/go-redis/v9"
)

// Services 主数据服务集合
type Services struct {
	Color       *ColorService
	Size        *SizeService
	GarmentType *GarmentTypeService
}

// NewServices 创建主数据服务集合
func NewServices(repos *repository.Repositories, rdb *redis.Client) *Services {
	return &Services{
		Color:       NewColorService(repos.Color, rdb),
		Size:        NewSizeService(repos.Size, rdb),
		GarmentType: NewGarmentTypeService(repos.GarmentType, rdb),
	}
}
