package dto

type OwnerRequest struct {
	OwnerFirstName string `json:"ownerFirstName" binding:"required"`
	OwnerLastName  string `json:"ownerLastName" binding:"required"`
	ContactEmail   string `json:"contactEmail" binding:"required,looseemail"`
	ContactNumber  string `json:"contactNumber"`
	Postcode       string `json:"postcode"`
	Address        string `json:"address"`
	DogName        string `json:"dogName" binding:"required"`
}

type BehaviouralBriefRequest struct {
	OwnerRequest
	DogSex         string `json:"dogSex"`
	Breed          string `json:"breed"`
	LifeWithDog    string `json:"lifeWithDog"`
	BestOutcome    string `json:"bestOutcome"`
	SessionsWanted string `json:"sessionsWanted"`
}

type BehaviourQuestionnaireRequest struct {
	OwnerRequest
	Age             string `json:"age"`
	Breed           string `json:"breed"`
	MainHelp        string `json:"mainHelp" binding:"required"`
	Problems        string `json:"problems"`
	HealthIssues    string `json:"healthIssues"`
	TrainingHistory string `json:"trainingHistory"`
}
