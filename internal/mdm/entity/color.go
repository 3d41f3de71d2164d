package entity

import "time"

// Color 颜色主数据
type Color struct {
	ID      string `json:"id" gorm:"primaryKey;size:32"`
	Code    string `json:"code" gorm:"size:50;not null;uniqueIndex"`
	Name    string `json:"name" gorm:"size:100;not null"`
	HexCode string `json:"hex_code" gorm:"size:20"` // #RRGGBB，非法值原样保存
	Family  string `json:"family" gorm:"size:20;index"`
	Value   string `json:"value" gorm:"size:20"`

	// 由hex解析得到，hex非法时保持零值
	R int     `json:"r"`
	G int     `json:"g"`
	B int     `json:"b"`
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`

	Pantone   string    `json:"pantone" gorm:"size:50"`
	Status    string    `json:"status" gorm:"size:20;index"`
	CreatedBy string    `json:"created_by" gorm:"size:32"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Color) TableName() string {
	return "mdm_colors"
}

// 主数据通用状态
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)
