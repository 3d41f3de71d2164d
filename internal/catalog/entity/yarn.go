package entity

import "time"

// Yarn 纱线档案
type Yarn struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	Code        string    `json:"code" gorm:"size:50;not null;uniqueIndex"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Count       string    `json:"count" gorm:"size:50"`        // 纱支，如 2/28NM
	Composition string    `json:"composition" gorm:"size:200"` // 成分，如 100% Merino Wool
	Supplier    string    `json:"supplier" gorm:"size:100"`
	PricePerKg  float64   `json:"price_per_kg"`
	Currency    string    `json:"currency" gorm:"size:10"`
	Status      string    `json:"status" gorm:"size:20;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Yarn) TableName() string {
	return "cat_yarns"
}

// 档案通用状态
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)
