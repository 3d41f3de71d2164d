package entity

import "time"

// DeliverySchedule 交期计划
type DeliverySchedule struct {
	ID          string     `json:"id" gorm:"primaryKey;size:32"`
	OrderID     string     `json:"order_id" gorm:"size:32;not null;index"`
	ScheduleNo  string     `json:"schedule_no" gorm:"size:50"`
	ShipDate    *time.Time `json:"ship_date"`
	Destination string     `json:"destination" gorm:"size:100"`
	Quantity    int        `json:"quantity"`
	Status      string     `json:"status" gorm:"size:20"`
	Notes       string     `json:"notes" gorm:"size:500"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (DeliverySchedule) TableName() string {
	return "oms_delivery_schedules"
}

// 交期计划状态
const (
	DeliveryStatusPlanned   = "planned"
	DeliveryStatusReady     = "ready"
	DeliveryStatusShipped   = "shipped"
	DeliveryStatusDelivered = "delivered"
)

// PackingDetail 装箱明细
type PackingDetail struct {
	ID            string    `json:"id" gorm:"primaryKey;size:32"`
	OrderID       string    `json:"order_id" gorm:"size:32;not null;index"`
	CartonNo      string    `json:"carton_no" gorm:"size:50"`
	LengthCm      float64   `json:"length_cm"`
	WidthCm       float64   `json:"width_cm"`
	HeightCm      float64   `json:"height_cm"`
	CBM           float64   `json:"cbm"` // 服务端按箱规计算，不信任客户端
	GrossWeightKg float64   `json:"gross_weight_kg"`
	NetWeightKg   float64   `json:"net_weight_kg"`
	QtyPerCarton  int       `json:"qty_per_carton"`
	CartonCount   int       `json:"carton_count"`
	Notes         string    `json:"notes" gorm:"size:500"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (PackingDetail) TableName() string {
	return "oms_packing_details"
}
