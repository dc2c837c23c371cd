package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/dto"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/httperr"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/httpresp"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/usecase/intake"
)

// IntakeHandler serves the public forms. No auth.
type IntakeHandler struct {
	submit *intake.Submit
}

func NewIntakeHandler(submit *intake.Submit) *IntakeHandler {
	return &IntakeHandler{submit: submit}
}

func owner(r dto.OwnerRequest) intake.Owner {
	return intake.Owner{
		FirstName: r.OwnerFirstName,
		LastName:  r.OwnerLastName,
		Email:     r.ContactEmail,
		Phone:     r.ContactNumber,
		Postcode:  r.Postcode,
		Address:   r.Address,
		DogName:   r.DogName,
	}
}

func (h *IntakeHandler) BehaviouralBrief(c *gin.Context) {
	var req dto.BehaviouralBriefRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.submit.Brief(c.Request.Context(), owner(req.OwnerRequest), models.BehaviouralBrief{
		DogName:        req.DogName,
		DogSex:         req.DogSex,
		Breed:          req.Breed,
		LifeWithDog:    req.LifeWithDog,
		BestOutcome:    req.BestOutcome,
		SessionsWanted: req.SessionsWanted,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{"success": true, "data": res})
}

func (h *IntakeHandler) BehaviourQuestionnaire(c *gin.Context) {
	var req dto.BehaviourQuestionnaireRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.submit.Questionnaire(c.Request.Context(), owner(req.OwnerRequest), models.BehaviourQuestionnaire{
		DogName:         req.DogName,
		Age:             req.Age,
		Breed:           req.Breed,
		MainHelp:        req.MainHelp,
		Problems:        req.Problems,
		HealthIssues:    req.HealthIssues,
		TrainingHistory: req.TrainingHistory,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{"success": true, "data": res})
}
