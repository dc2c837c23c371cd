package models

import (
	"strings"
	"time"
)

// Client is the account holder. Sessions and memberships join to it.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerFirstName string  `gorm:"size:100;not null" json:"owner_first_name"`
	OwnerLastName  string  `gorm:"size:100;not null" json:"owner_last_name"`
	ContactEmail   *string `gorm:"size:255;index" json:"contact_email"`
	ContactNumber  *string `gorm:"size:30;index" json:"contact_number"`

	Postcode string `gorm:"size:20" json:"postcode"`
	Address  string `gorm:"size:255" json:"address"`
	DogName  string `gorm:"size:100" json:"dog_name"`

	IsMember bool `gorm:"default:false" json:"is_member"`
	Active   bool `gorm:"default:true" json:"active"`

	SubmittedAt *time.Time `json:"submitted_at"`

	BehaviouralBriefID       *uint `json:"behavioural_brief_id"`
	BehaviourQuestionnaireID *uint `json:"behaviour_questionnaire_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c Client) DisplayName() string {
	return strings.TrimSpace(c.OwnerFirstName + " " + c.OwnerLastName)
}

// Email returns the contact email or "".
func (c Client) Email() string {
	if c.ContactEmail == nil {
		return ""
	}
	return *c.ContactEmail
}

func (c Client) Phone() string {
	if c.ContactNumber == nil {
		return ""
	}
	return *c.ContactNumber
}
