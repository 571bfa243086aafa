package models

import "time"

type Expense struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:180;not null" json:"title"`
	Category  string    `gorm:"size:120" json:"category"`
	Amount    float64   `gorm:"not null" json:"amount"`
	SpentAt   time.Time `gorm:"not null;index" json:"spent_at"`
	AddedByID uint      `json:"added_by_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
