package models

import "time"

// DirectSale is a walk-in retail sale not tied to a repair job.
type DirectSale struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Code    string `gorm:"uniqueIndex;size:40" json:"code"` // e.g. SL-2026-000045
	SaleSeq uint   `json:"sale_seq"`

	ClientID uint   `gorm:"index;not null" json:"client_id"`
	Client   Client `json:"client"`

	SaleDate   time.Time `gorm:"not null" json:"sale_date"`
	Subtotal   float64   `gorm:"not null" json:"subtotal"`
	Discount   float64   `gorm:"not null;default:0" json:"discount"`
	GrandTotal float64   `gorm:"not null" json:"grand_total"`

	Items []DirectSaleItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`

	Remarks     string    `gorm:"size:500" json:"remarks"`
	CreatedByID uint      `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type DirectSaleItem struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	DirectSaleID uint `gorm:"index;not null" json:"direct_sale_id"`
	PartID       uint `gorm:"not null" json:"part_id"`

	PartName  string  `gorm:"size:200;not null" json:"part_name"`
	Qty       int     `gorm:"not null" json:"qty"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
	LineTotal float64 `gorm:"not null" json:"line_total"`
}
