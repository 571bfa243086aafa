package models

import "time"

type Employee struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:180;not null" json:"name"`
	Phone       string    `gorm:"size:60" json:"phone"`
	Position    string    `gorm:"size:120" json:"position"`
	DailySalary float64   `gorm:"not null;default:0" json:"daily_salary"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AttendanceStatus string

const (
	AttendanceFull   AttendanceStatus = "FULL"
	AttendanceHalf   AttendanceStatus = "HALF"
	AttendanceAbsent AttendanceStatus = "ABSENT"
)

// SalaryMultiplier maps attendance to the fraction of the daily salary paid.
func (s AttendanceStatus) SalaryMultiplier() float64 {
	switch s {
	case AttendanceFull:
		return 1.0
	case AttendanceHalf:
		return 0.5
	default:
		return 0
	}
}

type Attendance struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	EmployeeID uint             `gorm:"uniqueIndex:idx_attendance_day;not null" json:"employee_id"`
	Employee   Employee         `json:"employee"`
	Date       time.Time        `gorm:"uniqueIndex:idx_attendance_day;not null" json:"date"`
	Status     AttendanceStatus `gorm:"size:10;not null" json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}
