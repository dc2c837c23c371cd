package models

import "time"

// Membership is one recurring payment as reported by the payment processor.
// It has no foreign key to Client; attribution happens at read time.
type Membership struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email  string    `gorm:"size:255;index" json:"email"`
	Client string    `gorm:"size:200" json:"client"`
	Date   time.Time `gorm:"type:date;index" json:"date"`
	Amount float64   `gorm:"type:decimal(10,2);not null" json:"amount"`

	CreatedAt time.Time `json:"created_at"`
}
