package entity

import "time"

// SampleMaterial 打样用料行，引用纱线/面料/辅料档案
type SampleMaterial struct {
	ID              string    `json:"id" gorm:"primaryKey;size:32"`
	SampleRequestID string    `json:"sample_request_id" gorm:"size:32;not null;index"`
	Kind            string    `json:"kind" gorm:"size:20;not null"` // yarn/fabric/trim
	RefID           string    `json:"ref_id" gorm:"size:32"`        // 对应档案ID，自备料可为空
	Name            string    `json:"name" gorm:"size:200;not null"`
	Usage           string    `json:"usage" gorm:"size:100"` // 大身/领口/袖口等
	Quantity        float64   `json:"quantity"`
	Unit            string    `json:"unit" gorm:"size:20"`
	Notes           string    `json:"notes" gorm:"size:500"`
	CreatedAt       time.Time `json:"created_at"`
}

func (SampleMaterial) TableName() string {
	return "smp_sample_materials"
}

// 用料类型
const (
	MaterialKindYarn   = "yarn"
	MaterialKindFabric = "fabric"
	MaterialKindTrim   = "trim"
)

// ValidMaterialKinds 合法的用料类型
var ValidMaterialKinds = map[string]bool{
	MaterialKindYarn:   true,
	MaterialKindFabric: true,
	MaterialKindTrim:   true,
}

// SampleColorway 打样配色行
type SampleColorway struct {
	ID              string    `json:"id" gorm:"primaryKey;size:32"`
	SampleRequestID string    `json:"sample_request_id" gorm:"size:32;not null;index"`
	ColorID         string    `json:"color_id" gorm:"size:32"`
	ColorName       string    `json:"color_name" gorm:"size:100;not null"`
	SizeID          string    `json:"size_id" gorm:"size:32"`
	SizeName        string    `json:"size_name" gorm:"size:100;not null"`
	Quantity        int       `json:"quantity"`
	CreatedAt       time.Time `json:"created_at"`
}

func (SampleColorway) TableName() string {
	return "smp_sample_colorways"
}
