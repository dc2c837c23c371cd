package models

import "time"

// AuditLog is the history side channel. Rows are best effort.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Action string `gorm:"size:50;not null;index" json:"action"`
	Source string `gorm:"size:50" json:"source"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entity_id"`
	Email    string `gorm:"size:255;index" json:"email"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
