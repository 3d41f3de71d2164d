package entity

import "time"

// Order 销售订单
type Order struct {
	ID            string     `json:"id" gorm:"primaryKey;size:32"`
	OrderNo       string     `json:"order_no" gorm:"size:50;not null;uniqueIndex"` // 合同号-序号，创建时分配
	ContractID    string     `json:"contract_id" gorm:"size:32;not null;index"`
	GarmentTypeID string     `json:"garment_type_id" gorm:"size:32"`
	StyleNo       string     `json:"style_no" gorm:"size:50"`
	Quantity      int        `json:"quantity"`
	UnitPrice     float64    `json:"unit_price"`
	Amount        float64    `json:"amount"` // Quantity × UnitPrice
	DeliveryDate  *time.Time `json:"delivery_date"`
	Destination   string     `json:"destination" gorm:"size:100"`
	Status        string     `json:"status" gorm:"size:20;index"`
	Notes         string     `json:"notes" gorm:"size:500"`
	CreatedBy     string     `json:"created_by" gorm:"size:32"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Order) TableName() string {
	return "oms_orders"
}

// 订单状态
const (
	OrderStatusPending      = "pending"
	OrderStatusConfirmed    = "confirmed"
	OrderStatusInProduction = "in_production"
	OrderStatusShipped      = "shipped"
	OrderStatusDelivered    = "delivered"
	OrderStatusCancelled    = "cancelled"
)

// ValidOrderTransitions 合法的订单状态流转
var ValidOrderTransitions = map[string][]string{
	OrderStatusPending:      {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:    {OrderStatusInProduction, OrderStatusCancelled},
	OrderStatusInProduction: {OrderStatusShipped},
	OrderStatusShipped:      {OrderStatusDelivered},
}

// OrderBreakdown 订单颜色尺码分解行
type OrderBreakdown struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	OrderID   string    `json:"order_id" gorm:"size:32;not null;uniqueIndex:idx_breakdown_order_color_size"`
	ColorID   string    `json:"color_id" gorm:"size:32;not null;uniqueIndex:idx_breakdown_order_color_size"`
	ColorName string    `json:"color_name" gorm:"size:100"`
	SizeID    string    `json:"size_id" gorm:"size:32;not null;uniqueIndex:idx_breakdown_order_color_size"`
	SizeName  string    `json:"size_name" gorm:"size:100"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

func (OrderBreakdown) TableName() string {
	return "oms_order_breakdowns"
}
