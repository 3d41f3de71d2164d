package entity

import "time"

// SampleRequest 打样需求单，四步向导逐步完善后提交
type SampleRequest struct {
	ID            string `json:"id" gorm:"primaryKey;size:32"`
	RequestNo     string `json:"request_no" gorm:"size:50;not null;uniqueIndex"` // SR-日期-流水号，创建时分配
	Buyer         string `json:"buyer" gorm:"size:100;index"`
	GarmentTypeID string `json:"garment_type_id" gorm:"size:32"`
	StyleNo       string `json:"style_no" gorm:"size:50"`
	Round         int    `json:"round"` // 开发轮次，驳回重开发时递增
	Status        string `json:"status" gorm:"size:20;index"`
	CurrentStep   int    `json:"current_step"` // 0-4，已连续完成的最高步骤

	BasicsDone      bool `json:"basics_done"`
	MaterialsDone   bool `json:"materials_done"`
	ColorwaysDone   bool `json:"colorways_done"`
	WorkmanshipDone bool `json:"workmanship_done"`

	Workmanship        string     `json:"workmanship" gorm:"size:1000"` // 织造/缝合工艺要求
	WashingInstruction string     `json:"washing_instruction" gorm:"size:500"`
	DueDate            *time.Time `json:"due_date"`
	Priority           string     `json:"priority" gorm:"size:20"` // low/normal/high
	Notes              string     `json:"notes" gorm:"size:500"`
	RequestedBy        string     `json:"requested_by" gorm:"size:32"`

	SubmittedAt *time.Time `json:"submitted_at"`
	SentAt      *time.Time `json:"sent_at"`
	DecidedAt   *time.Time `json:"decided_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (SampleRequest) TableName() string {
	return "smp_sample_requests"
}

// 打样单状态
const (
	SampleStatusDraft         = "draft"
	SampleStatusSubmitted     = "submitted"
	SampleStatusInDevelopment = "in_development"
	SampleStatusSampleSent    = "sample_sent"
	SampleStatusApproved      = "approved"
	SampleStatusRejected      = "rejected"
	SampleStatusCancelled     = "cancelled"
)

// ValidSampleTransitions 合法的打样单状态流转。
// draft → submitted 不在此表内，必须走提交接口校验向导完成度。
var ValidSampleTransitions = map[string][]string{
	SampleStatusDraft:         {SampleStatusCancelled},
	SampleStatusSubmitted:     {SampleStatusInDevelopment, SampleStatusCancelled},
	SampleStatusInDevelopment: {SampleStatusSampleSent},
	SampleStatusSampleSent:    {SampleStatusApproved, SampleStatusRejected},
	SampleStatusRejected:      {SampleStatusInDevelopment},
}

// 向导步骤
const (
	StepBasics      = 1
	StepMaterials   = 2
	StepColorways   = 3
	StepWorkmanship = 4
)
