package models

// Interest is a free-text tag attached to a birthday person.
type Interest struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	BirthdayID uint   `gorm:"not null;index" json:"birthday_id"`
	Text       string `gorm:"column:interest;not null;size:100" json:"interest"`
}

func (Interest) TableName() string {
	return "interests"
}
