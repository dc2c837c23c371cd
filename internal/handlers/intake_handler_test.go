package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

func TestIntake_BehaviouralBriefCreatesClient(t *testing.T) {
	s := newServer(t)

	res := s.do(t, http.MethodPost, "/api/public/behavioural-brief", map[string]any{
		"ownerFirstName": "Sam",
		"ownerLastName":  "Jones",
		"contactEmail":   "Sam@Example.com",
		"contactNumber":  "07700 900456",
		"dogName":        "Luna",
		"breed":          "Collie",
		"bestOutcome":    "calm walks",
	}, nil)
	require.Equal(t, http.StatusCreated, res.Code, res.Body)

	d := data(t, res)
	assert.Equal(t, true, d["isNewClient"])
	assert.NotZero(t, d["documentId"])

	clients := s.store.Clients()
	require.Len(t, clients, 1)
	assert.Equal(t, "sam@example.com", clients[0].Email())
	assert.False(t, clients[0].IsMember)
	require.NotNil(t, clients[0].BehaviouralBriefID)
}

func TestIntake_QuestionnaireReusesClient(t *testing.T) {
	s := newServer(t)
	c := s.store.AddClient(models.Client{
		OwnerFirstName: "Sam",
		ContactEmail:   ptr("sam@example.com"),
		IsMember:       true,
	})

	res := s.do(t, http.MethodPost, "/api/public/behaviour-questionnaire", map[string]any{
		"ownerFirstName": "Sam",
		"ownerLastName":  "Jones",
		"contactEmail":   "sam@example.com",
		"dogName":        "Luna",
		"mainHelp":       "reactivity",
	}, nil)
	require.Equal(t, http.StatusCreated, res.Code, res.Body)
	assert.Equal(t, false, data(t, res)["isNewClient"])
	assert.Equal(t, float64(c.ID), data(t, res)["clientId"])

	got, ok := s.store.Client(c.ID)
	require.True(t, ok)
	assert.True(t, got.IsMember)
	assert.NotNil(t, got.BehaviourQuestionnaireID)
}

func TestIntake_Validation(t *testing.T) {
	s := newServer(t)

	res := s.do(t, http.MethodPost, "/api/public/behaviour-questionnaire", map[string]any{
		"ownerFirstName": "Sam",
		"ownerLastName":  "Jones",
		"contactEmail":   "not-an-email",
		"dogName":        "Luna",
	}, nil)
	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "invalid_request", res.Body["error"])

	details := res.Body["details"].(map[string]any)
	fields := details["fields"].([]any)
	rules := map[string]string{}
	for _, f := range fields {
		fe := f.(map[string]any)
		rules[fe["field"].(string)] = fe["rule"].(string)
	}
	assert.Equal(t, "looseemail", rules["contactEmail"])
	assert.Equal(t, "required", rules["mainHelp"])

	assert.Empty(t, s.store.Clients())
}
