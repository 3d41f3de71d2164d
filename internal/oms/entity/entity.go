package entity

import "gorm.io/gorm"

// AutoMigrate 自动迁移订单域表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&SalesContract{},
		&Order{},
		&OrderBreakdown{},
		&DeliverySchedule{},
		&PackingDetail{},
	)
}
