package models

import "time"

type LedgerEntryType string

const (
	LedgerOpening         LedgerEntryType = "OPENING"
	LedgerJobDelivered    LedgerEntryType = "JOB_DELIVERED"
	LedgerDirectSale      LedgerEntryType = "DIRECT_SALE"
	LedgerPayment         LedgerEntryType = "PAYMENT"
	LedgerPaymentReversed LedgerEntryType = "PAYMENT_REVERSED"
	LedgerSaleReversed    LedgerEntryType = "SALE_REVERSED"
	LedgerJobReversed     LedgerEntryType = "JOB_REVERSED"
)

// LedgerEntry is an immutable balance-affecting event. DEBIT raises the
// client's outstanding balance, CREDIT lowers it. A row is appended in the
// same transaction as the balance move it records.
type LedgerEntry struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClientID uint `gorm:"index;not null" json:"client_id"`

	Type      LedgerEntryType `gorm:"size:24;not null" json:"type"`
	Direction string          `gorm:"size:6;not null" json:"direction"` // DEBIT/CREDIT
	Amount    float64         `gorm:"not null" json:"amount"`

	RefType string `gorm:"size:40;not null" json:"ref_type"` // "job", "direct_sale", "payment", ...
	RefID   uint   `gorm:"not null" json:"ref_id"`

	ActorID   uint      `gorm:"index" json:"actor_id"`
	Note      string    `gorm:"size:255" json:"note,omitempty"`
	EntryDate time.Time `gorm:"not null;index" json:"entry_date"`

	CreatedAt time.Time `json:"created_at"`
}
