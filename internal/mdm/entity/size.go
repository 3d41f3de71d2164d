package entity

import "time"

// Size 尺码主数据
type Size struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Code      string    `json:"code" gorm:"size:50;not null;uniqueIndex"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	SizeGroup string    `json:"size_group" gorm:"size:50;index"` // adult/child/infant
	SortOrder int       `json:"sort_order"`                      // 列表与矩阵列顺序
	Status    string    `json:"status" gorm:"size:20;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Size) TableName() string {
	return "mdm_sizes"
}
