package entity

import "time"

// Fabric 面料档案
type Fabric struct {
	ID            string    `json:"id" gorm:"primaryKey;size:32"`
	Code          string    `json:"code" gorm:"size:50;not null;uniqueIndex"`
	Name          string    `json:"name" gorm:"size:100;not null"`
	GSM           int       `json:"gsm"` // 克重 g/m²
	Composition   string    `json:"composition" gorm:"size:200"`
	WidthCm       float64   `json:"width_cm"`
	Construction  string    `json:"construction" gorm:"size:100"` // 组织结构，如 single jersey
	Supplier      string    `json:"supplier" gorm:"size:100"`
	PricePerMeter float64   `json:"price_per_meter"`
	Currency      string    `json:"currency" gorm:"size:10"`
	Status        string    `json:"status" gorm:"size:20;index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Fabric) TableName() string {
	return "cat_fabrics"
}
