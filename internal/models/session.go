package models

import "time"

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Session is a booked training session. ClientID stays nil until the
// session is reconciled against a client.
type Session struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID *uint `gorm:"index" json:"client_id"`

	BookingTime time.Time `json:"booking_time"`
	SessionType string    `gorm:"size:100" json:"session_type"`
	Amount      float64   `gorm:"type:decimal(10,2);default:0" json:"amount"`
	DepositPaid bool      `gorm:"default:false" json:"deposit_paid"`

	PaymentStatus   string     `gorm:"size:20;default:'pending'" json:"payment_status"`
	PaymentDate     *time.Time `json:"payment_date"`
	PaymentIntentID string     `gorm:"size:255" json:"payment_intent_id"`

	// Denormalized copies. The joined Client is authoritative.
	ClientName string `gorm:"size:200" json:"client_name"`
	DogName    string `gorm:"size:100" json:"dog_name"`
	Email      string `gorm:"size:255" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
