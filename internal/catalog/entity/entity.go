package entity

import "gorm.io/gorm"

// AutoMigrate 自动迁移物料档案表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Yarn{},
		&Fabric{},
		&CatalogItem{},
	)
}
