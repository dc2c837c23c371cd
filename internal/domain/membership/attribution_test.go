package membership

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainClient "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/client"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

func strPtr(s string) *string { return &s }

var t0 = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestAttributor_FamilyOverride(t *testing.T) {
	overrides := domainClient.NewOverrideTable(domainClient.OverrideRule{
		Email:              "family@example.com",
		Surname:            "vautrinot",
		PreferredFirstName: "Heather",
	})

	heather := models.Client{ID: 1, OwnerFirstName: "Heather", OwnerLastName: "Vautrinot", CreatedAt: t0}
	christopher := models.Client{ID: 2, OwnerFirstName: "Christopher", OwnerLastName: "Vautrinot", CreatedAt: t0.Add(time.Hour)}

	payment := models.Membership{Email: "Family@Example.com", Client: "C Vautrinot", Amount: 25}

	for _, order := range [][]models.Client{
		{heather, christopher},
		{christopher, heather},
	} {
		c, by := NewAttributor(order, overrides).Attribute(payment)
		require.NotNil(t, c)
		assert.Equal(t, "Heather", c.OwnerFirstName)
		assert.Equal(t, AttributedByOverride, by)
	}
}

func TestAttributor_EmailThenSurname(t *testing.T) {
	clients := []models.Client{
		{ID: 1, OwnerFirstName: "Anna", OwnerLastName: "Smith", ContactEmail: strPtr("A@X.com"), DogName: "Rex", CreatedAt: t0},
		{ID: 2, OwnerFirstName: "Tom", OwnerLastName: "Brown", CreatedAt: t0},
		{ID: 3, OwnerFirstName: "Tina", OwnerLastName: "Brown", CreatedAt: t0.Add(time.Hour)},
	}
	a := NewAttributor(clients, domainClient.NewOverrideTable())

	c, by := a.Attribute(models.Membership{Email: "a@x.com", Client: "Whoever"})
	require.NotNil(t, c)
	assert.Equal(t, uint(1), c.ID)
	assert.Equal(t, AttributedByEmail, by)

	c, by = a.Attribute(models.Membership{Email: "unknown@x.com", Client: "T. BROWN"})
	require.NotNil(t, c)
	assert.Equal(t, uint(3), c.ID, "newest client with the surname")
	assert.Equal(t, AttributedBySurname, by)

	c, by = a.Attribute(models.Membership{Email: "unknown@x.com", Client: ""})
	assert.Nil(t, c)
	assert.Empty(t, by)
}

func TestAttributor_Describe(t *testing.T) {
	clients := []models.Client{
		{ID: 5, OwnerFirstName: "Anna", OwnerLastName: "Smith", ContactEmail: strPtr("a@x.com"), DogName: "Rex"},
	}
	a := NewAttributor(clients, domainClient.NewOverrideTable())

	got := a.Describe(models.Membership{Email: "a@x.com"})
	require.NotNil(t, got.ClientID)
	assert.Equal(t, uint(5), *got.ClientID)
	assert.Equal(t, "Anna Smith", got.ClientName)
	assert.Equal(t, "Rex", got.DogName)

	miss := a.Describe(models.Membership{Email: "b@x.com", Client: "Raw Name"})
	assert.Nil(t, miss.ClientID)
	assert.Equal(t, "Raw Name", miss.ClientName)
}

func TestSurname(t *testing.T) {
	tests := map[string]string{
		"Anna Smith":      "smith",
		"  anna   SMITH ": "smith",
		"Cher":            "cher",
		"":                "",
		"John Smith Jr":   "jr",
	}
	for in, want := range tests {
		assert.Equal(t, want, Surname(in), in)
	}
}
