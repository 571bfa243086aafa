package models

import "gorm.io/gorm"

type Part struct {
	gorm.Model
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	PurchasePrice float64 `json:"purchase_price"`
	SalePrice     float64 `json:"sale_price"`
	Stock         int     `json:"stock"`
	MinStock      int     `json:"min_stock"`
}

// LowStock reports whether the part should be flagged for reorder.
func (p Part) LowStock() bool {
	return p.Stock <= p.MinStock
}
