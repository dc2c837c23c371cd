package membership

import (
	"strings"

	domainClient "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/client"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

const (
	AttributedByOverride = "family_override"
	AttributedByEmail    = "email"
	AttributedBySurname  = "surname"
)

// Attribution links a payment row to a client for display. It never
// changes how the row is counted.
type Attribution struct {
	ClientID   *uint  `json:"clientId"`
	ClientName string `json:"clientName"`
	DogName    string `json:"dogName"`
	MatchedBy  string `json:"matchedBy,omitempty"`
}

type Attributor struct {
	overrides domainClient.OverrideTable
	clients   []models.Client
	byEmail   map[string]models.Client
	bySurname map[string][]models.Client
}

func NewAttributor(clients []models.Client, overrides domainClient.OverrideTable) *Attributor {
	bySurname := make(map[string][]models.Client)
	for _, c := range clients {
		key := strings.ToLower(strings.TrimSpace(c.OwnerLastName))
		if key == "" {
			continue
		}
		bySurname[key] = append(bySurname[key], c)
	}

	return &Attributor{
		overrides: overrides,
		clients:   clients,
		byEmail:   domainClient.EmailIndex(clients),
		bySurname: bySurname,
	}
}

// Attribute tries, in order: family override, exact email, surname.
func (a *Attributor) Attribute(m models.Membership) (*models.Client, string) {
	if rule, ok := a.overrides.Resolve(m.Email); ok {
		if c := domainClient.Pick(rule, a.clients); c != nil {
			return c, AttributedByOverride
		}
	}

	if c, ok := a.byEmail[strings.ToLower(strings.TrimSpace(m.Email))]; ok {
		return &c, AttributedByEmail
	}

	if surname := Surname(m.Client); surname != "" {
		if c := domainClient.MostRecent(a.bySurname[surname]); c != nil {
			return c, AttributedBySurname
		}
	}

	return nil, ""
}

func (a *Attributor) Describe(m models.Membership) Attribution {
	c, by := a.Attribute(m)
	if c == nil {
		return Attribution{ClientName: m.Client}
	}
	id := c.ID
	return Attribution{
		ClientID:   &id,
		ClientName: c.DisplayName(),
		DogName:    c.DogName,
		MatchedBy:  by,
	}
}

// Surname is a best-effort heuristic: the last whitespace-delimited token
// of a free-text display name, lower-cased. Multi-word surnames and
// trailing titles or suffixes come out wrong.
func Surname(displayName string) string {
	fields := strings.Fields(displayName)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[len(fields)-1])
}
