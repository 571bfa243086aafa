package models

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;size:120" json:"username"`
	FullName     string     `gorm:"size:180" json:"full_name"`
	Email        string     `gorm:"size:180" json:"email"`
	Phone        string     `gorm:"size:60" json:"phone"`
	Role         Role       `gorm:"size:20;not null;default:staff" json:"role"`
	PasswordHash string     `gorm:"size:255" json:"-"` // never sent to client
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
