package dto

type MatchSessionsRequest struct {
	// DryRun defaults to true so nothing is committed without an explicit false.
	DryRun       *bool `json:"dryRun"`
	OnlyUnlinked bool  `json:"onlyUnlinked"`
}

func (r MatchSessionsRequest) IsDryRun() bool {
	return r.DryRun == nil || *r.DryRun
}

type UpdateClientRequest struct {
	OwnerFirstName *string `json:"ownerFirstName"`
	OwnerLastName  *string `json:"ownerLastName"`
	ContactEmail   *string `json:"contactEmail" binding:"omitempty,looseemail"`
	ContactNumber  *string `json:"contactNumber"`
	Postcode       *string `json:"postcode"`
	Address        *string `json:"address"`
	DogName        *string `json:"dogName"`
	IsMember       *bool   `json:"isMember"`
	Active         *bool   `json:"active"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
