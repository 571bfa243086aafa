package models

import "time"

type Loan struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Lender    string    `gorm:"size:180;not null" json:"lender"`
	Principal float64   `gorm:"not null" json:"principal"`
	Note      string    `gorm:"size:255" json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Payments []LoanPayment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"payments"`
}

type LoanPayment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	LoanID     uint      `gorm:"index;not null" json:"loan_id"`
	AmountPaid float64   `gorm:"not null" json:"amount_paid"`
	PaidAt     time.Time `gorm:"not null;index" json:"paid_at"`
	Note       string    `gorm:"size:255" json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}
