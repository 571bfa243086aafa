package models

import "time"

type PaymentMode string

const (
	PayCash PaymentMode = "CASH"
	PayUPI  PaymentMode = "UPI"
	PayCard PaymentMode = "CARD"
	PayBank PaymentMode = "BANK"
)

// Payment is money actually received from a client. Amount is the gross
// figure settled against the balance; Discount is the slice of it that was
// waived, so the balance credit is Amount - Discount.
type Payment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ClientID uint   `gorm:"index;not null" json:"client_id"`
	Client   Client `json:"client"`

	Amount   float64     `gorm:"not null" json:"amount"`
	Discount float64     `gorm:"not null;default:0" json:"discount"`
	Mode     PaymentMode `gorm:"size:10;not null" json:"mode"`
	PaidAt   time.Time   `gorm:"not null;index" json:"paid_at"`

	JobID   *uint  `gorm:"index" json:"job_id"` // optional: payment against a specific job
	Remarks string `gorm:"size:255" json:"remarks"`

	ReceivedByID uint      `json:"received_by_id"`
	CreatedAt    time.Time `json:"created_at"`
}
