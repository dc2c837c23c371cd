package models

import "time"

// BehaviouralBrief is the short intake form filled in before a first session.
type BehaviouralBrief struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClientID uint `gorm:"index" json:"client_id"`

	DogName        string `gorm:"size:100" json:"dog_name"`
	DogSex         string `gorm:"size:20" json:"dog_sex"`
	Breed          string `gorm:"size:100" json:"breed"`
	LifeWithDog    string `gorm:"type:text" json:"life_with_dog"`
	BestOutcome    string `gorm:"type:text" json:"best_outcome"`
	SessionsWanted string `gorm:"size:100" json:"sessions_wanted"`

	SubmittedAt time.Time `json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// BehaviourQuestionnaire is the long-form history questionnaire.
type BehaviourQuestionnaire struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClientID uint `gorm:"index" json:"client_id"`

	DogName         string `gorm:"size:100" json:"dog_name"`
	Age             string `gorm:"size:50" json:"age"`
	Breed           string `gorm:"size:100" json:"breed"`
	MainHelp        string `gorm:"type:text" json:"main_help"`
	Problems        string `gorm:"type:text" json:"problems"`
	HealthIssues    string `gorm:"type:text" json:"health_issues"`
	TrainingHistory string `gorm:"type:text" json:"training_history"`

	SubmittedAt time.Time `json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"`
}
