package session

import (
	"fmt"
	"strings"

	domainClient "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/client"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

const ReasonNoEmail = "no email"

type Matched struct {
	SessionID   uint   `json:"sessionId"`
	Email       string `json:"email"`
	ClientID    uint   `json:"clientId"`
	ClientName  string `json:"clientName"`
	DogName     string `json:"dogName"`
	NeedsUpdate bool   `json:"needsUpdate"`
}

type Unmatched struct {
	SessionID uint   `json:"sessionId"`
	Email     string `json:"email,omitempty"`
	Reason    string `json:"reason"`
}

type Result struct {
	Matched   []Matched
	Unmatched []Unmatched
}

func (r Result) NeedsUpdate() []Matched {
	var out []Matched
	for _, m := range r.Matched {
		if m.NeedsUpdate {
			out = append(out, m)
		}
	}
	return out
}

// Reconcile classifies every session as matched or unmatched by email. It
// performs no I/O.
func Reconcile(sessions []models.Session, clients []models.Client) Result {
	idx := domainClient.EmailIndex(clients)

	res := Result{
		Matched:   make([]Matched, 0, len(sessions)),
		Unmatched: make([]Unmatched, 0),
	}

	for _, s := range sessions {
		email := strings.TrimSpace(s.Email)
		if email == "" {
			res.Unmatched = append(res.Unmatched, Unmatched{
				SessionID: s.ID,
				Reason:    ReasonNoEmail,
			})
			continue
		}

		c, ok := idx[strings.ToLower(email)]
		if !ok {
			res.Unmatched = append(res.Unmatched, Unmatched{
				SessionID: s.ID,
				Email:     email,
				Reason:    fmt.Sprintf("no client for email %s", email),
			})
			continue
		}

		name := c.DisplayName()
		res.Matched = append(res.Matched, Matched{
			SessionID:   s.ID,
			Email:       email,
			ClientID:    c.ID,
			ClientName:  name,
			DogName:     c.DogName,
			NeedsUpdate: !linkedTo(s, c.ID, name, c.DogName),
		})
	}

	return res
}

func linkedTo(s models.Session, clientID uint, name, dogName string) bool {
	return s.ClientID != nil &&
		*s.ClientID == clientID &&
		s.ClientName == name &&
		s.DogName == dogName
}
