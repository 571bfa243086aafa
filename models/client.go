package models

import "gorm.io/gorm"

type Client struct {
	gorm.Model
	Name           string  `json:"name"`
	Mobile         string  `json:"mobile"`
	Email          string  `json:"email"`
	Address        string  `json:"address"`
	GSTIN          string  `json:"gstin"`
	OpeningBalance float64 `json:"opening_balance"`

	// Cached outstanding balance. Moved only by applyLedgerEntry so that
	// every change has a matching LedgerEntry row in the same transaction.
	Balance float64 `gorm:"not null;default:0" json:"balance"`
}
