package models

import "time"

type JobStatus string

const (
	JobPending    JobStatus = "PENDING"
	JobInProgress JobStatus = "IN_PROGRESS"
	JobRepaired   JobStatus = "REPAIRED"
	JobDelivered  JobStatus = "DELIVERED"
	JobCancelled  JobStatus = "CANCELLED"
)

// Terminal reports whether a status accepts no further part or labour edits.
func (s JobStatus) Terminal() bool {
	return s == JobDelivered || s == JobCancelled
}

type Job struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Code     string `gorm:"uniqueIndex;size:40" json:"code"` // e.g. JB-2026-000123 (generated server side)
	JobSeq   uint   `json:"job_seq"`
	ClientID uint   `gorm:"index;not null" json:"client_id"`
	Client   Client `json:"client"`

	ItemName string `gorm:"size:180;not null" json:"item_name"`
	SerialNo string `gorm:"size:120" json:"serial_no"`
	Problem  string `gorm:"size:500" json:"problem"`
	Remarks  string `gorm:"size:500" json:"remarks"`

	Status JobStatus `gorm:"size:20;index" json:"status"`

	LabourCharge float64 `gorm:"not null;default:0" json:"labour_charge"`
	PartsTotal   float64 `gorm:"not null;default:0" json:"parts_total"`
	// FinalBill == LabourCharge + PartsTotal after every committed mutation.
	FinalBill float64 `gorm:"not null;default:0" json:"final_bill"`

	Parts []JobPart `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"parts"`

	ReceivedAt  time.Time  `json:"received_at"`
	DeliveredAt *time.Time `json:"delivered_at"`

	CreatedByID uint      `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// JobPart is a consumed-part line item. Name and price are snapshotted at
// the time of use so later edits to the Part never alter historical bills.
type JobPart struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	JobID  uint `gorm:"index;not null" json:"job_id"`
	PartID uint `gorm:"not null" json:"part_id"`

	PartName  string  `gorm:"size:200;not null" json:"part_name"`
	Qty       int     `gorm:"not null" json:"qty"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
	LineTotal float64 `gorm:"not null" json:"line_total"`

	CreatedAt time.Time `json:"created_at"`
}
