package models

import (
	"gorm.io/gorm"
)

// StockMovement is an audit row written next to every stock mutation,
// so a restock or consumption is never a silent value overwrite.
type StockMovement struct {
	gorm.Model
	PartID uint `json:"part_id"`
	Part   Part `gorm:"foreignKey:PartID" json:"part"`

	OldStock int    `json:"old_stock"`
	NewStock int    `json:"new_stock"`
	Delta    int    `json:"delta"`
	Reason   string `json:"reason"`

	RefType string `gorm:"size:40" json:"ref_type"` // "job", "direct_sale", "restock", ...
	RefID   uint   `json:"ref_id"`

	CreatedByID uint `json:"created_by_id"`
}
