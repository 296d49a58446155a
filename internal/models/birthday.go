package models

import (
	"time"
)

// Birthday is one tracked person. Names are stored lowercased with
// whitespace collapsed; a user cannot track two people with the same name.
type Birthday struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Name      string     `gorm:"column:birthday_name;not null;size:100;index" json:"name"`
	BirthDate time.Time  `gorm:"column:birth_date;type:date;not null" json:"birth_date"`
	CreatedAt time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	Interests []Interest `gorm:"foreignKey:BirthdayID;constraint:OnDelete:CASCADE" json:"interests,omitempty"`
}

func (Birthday) TableName() string {
	return "birthdays"
}
