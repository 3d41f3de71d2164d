package entity

import "gorm.io/gorm"

// AutoMigrate 自动迁移主数据表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Color{},
		&Size{},
		&GarmentType{},
	)
}
