package entity

import "gorm.io/gorm"

// AutoMigrate 自动迁移用户表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
	)
}
