package entity

import "time"

// ActivityLog 打样域操作日志
type ActivityLog struct {
	ID         string `json:"id" gorm:"primaryKey;size:32"`
	EntityType string `json:"entity_type" gorm:"size:50;not null;index:idx_smp_activity_entity"` // sample_request
	EntityID   string `json:"entity_id" gorm:"size:32;not null;index:idx_smp_activity_entity"`
	RefCode    string `json:"ref_code" gorm:"size:50"` // 打样单号

	Action     string `json:"action" gorm:"size:50;not null"` // create/step_update/submit/status_change/attachment等
	FromStatus string `json:"from_status" gorm:"size:20"`
	ToStatus   string `json:"to_status" gorm:"size:20"`

	Content    string    `json:"content" gorm:"type:text"`
	OperatorID string    `json:"operator_id" gorm:"size:32"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "smp_activity_logs"
}
