package entity

import "time"

// SalesContract 销售合同
type SalesContract struct {
	ID           string     `json:"id" gorm:"primaryKey;size:32"`
	ContractNo   string     `json:"contract_no" gorm:"size:50;not null;uniqueIndex"`
	Buyer        string     `json:"buyer" gorm:"size:100;not null;index"`
	Season       string     `json:"season" gorm:"size:20"` // 如 FW25/SS26
	Currency     string     `json:"currency" gorm:"size:10"`
	PaymentTerms string     `json:"payment_terms" gorm:"size:100"` // 如 TT 30天
	Status       string     `json:"status" gorm:"size:20;index"`
	TotalAmount  float64    `json:"total_amount"` // 订单金额汇总，由订单增删改时回写
	SignedDate   *time.Time `json:"signed_date"`
	Notes        string     `json:"notes" gorm:"size:500"`
	CreatedBy    string     `json:"created_by" gorm:"size:32"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (SalesContract) TableName() string {
	return "oms_sales_contracts"
}

// 合同状态
const (
	ContractStatusDraft        = "draft"
	ContractStatusConfirmed    = "confirmed"
	ContractStatusInProduction = "in_production"
	ContractStatusShipped      = "shipped"
	ContractStatusClosed       = "closed"
	ContractStatusCancelled    = "cancelled"
)

// ValidContractTransitions 合法的合同状态流转
var ValidContractTransitions = map[string][]string{
	ContractStatusDraft:        {ContractStatusConfirmed, ContractStatusCancelled},
	ContractStatusConfirmed:    {ContractStatusInProduction, ContractStatusCancelled},
	ContractStatusInProduction: {ContractStatusShipped},
	ContractStatusShipped:      {ContractStatusClosed},
}
