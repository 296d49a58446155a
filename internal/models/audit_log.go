package models

import (
	"time"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	Action    string    `gorm:"not null;size:50;index" json:"action"`
	EntityID  string    `gorm:"size:255" json:"entity_id"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	Browser   string    `gorm:"size:100" json:"browser"`
	OS        string    `gorm:"size:100" json:"os"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}
