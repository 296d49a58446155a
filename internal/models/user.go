package models

import (
	"time"
)

// User is an account holder. Usernames are stored lowercased and are
// unique case-insensitively; handlers downcase input before it gets here.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"column:user_name;unique;not null;size:100" json:"username"`
	PasswordHash string     `gorm:"column:password;not null;size:255" json:"-"`
	CreatedAt    time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	Birthdays    []Birthday `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"birthdays,omitempty"`
}
