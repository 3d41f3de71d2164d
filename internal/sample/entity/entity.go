package entity

import "gorm.io/gorm"

// AutoMigrate 自动迁移打样域表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&SampleRequest{},
		&SampleMaterial{},
		&SampleColorway{},
		&SampleAttachment{},
		&ActivityLog{},
	)
}
