package entity

import "time"

// GarmentType 款式类型主数据
type GarmentType struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	Code        string    `json:"code" gorm:"size:50;not null;uniqueIndex"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Category    string    `json:"category" gorm:"size:50;index"` // sweater/cardigan/vest/dress
	Gauges      string    `json:"gauges" gorm:"size:200"`         // 存储形态，如 "12 GG,14 GG"
	Description string    `json:"description" gorm:"size:500"`
	Status      string    `json:"status" gorm:"size:20;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (GarmentType) TableName() string {
	return "mdm_garment_types"
}
