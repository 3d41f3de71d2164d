package entity

import "time"

// CatalogItem 通用物品档案（辅料、配件、成品、包材）
type CatalogItem struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	ProductID string    `json:"product_id" gorm:"size:100;not null;uniqueIndex"` // 形如 BUTTON_TRI_0001，创建时由服务端分配
	Name      string    `json:"name" gorm:"size:100;not null"`
	Category  string    `json:"category" gorm:"size:30;index"`
	Spec      string    `json:"spec" gorm:"size:200"`
	Unit      string    `json:"unit" gorm:"size:20"`
	UnitPrice float64   `json:"unit_price"`
	Currency  string    `json:"currency" gorm:"size:10"`
	Supplier  string    `json:"supplier" gorm:"size:100"`
	Status    string    `json:"status" gorm:"size:20;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CatalogItem) TableName() string {
	return "cat_catalog_items"
}

// 物品类目
const (
	ItemCategoryTrims         = "trims"
	ItemCategoryAccessories   = "accessories"
	ItemCategoryFinishedGoods = "finished_goods"
	ItemCategoryPackingGoods  = "packing_goods"
)

// ValidItemCategories 合法物品类目
var ValidItemCategories = map[string]bool{
	ItemCategoryTrims:         true,
	ItemCategoryAccessories:   true,
	ItemCategoryFinishedGoods: true,
	ItemCategoryPackingGoods:  true,
}
