package client

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

// MemorySource runs the Source lookups over an already loaded slice, with
// the same semantics as the database queries.
type MemorySource struct {
	clients []models.Client
}

func NewMemorySource(clients []models.Client) *MemorySource {
	return &MemorySource{clients: clients}
}

func (m *MemorySource) filter(keep func(models.Client) bool) []models.Client {
	var out []models.Client
	for _, c := range m.clients {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func (m *MemorySource) ClientsByEmail(_ context.Context, email string) ([]models.Client, error) {
	email = strings.TrimSpace(email)
	return m.filter(func(c models.Client) bool {
		return c.ContactEmail != nil && strings.EqualFold(strings.TrimSpace(*c.ContactEmail), email)
	}), nil
}

func (m *MemorySource) ClientsByPhone(_ context.Context, phone string) ([]models.Client, error) {
	return m.filter(func(c models.Client) bool {
		return c.ContactNumber != nil && *c.ContactNumber == phone
	}), nil
}

func (m *MemorySource) ClientsByFirstName(_ context.Context, fragment string) ([]models.Client, error) {
	fragment = strings.ToLower(fragment)
	return m.filter(func(c models.Client) bool {
		return strings.Contains(strings.ToLower(c.OwnerFirstName), fragment)
	}), nil
}

func (m *MemorySource) ClientsByDogName(_ context.Context, dogName string) ([]models.Client, error) {
	return m.filter(func(c models.Client) bool {
		return c.DogName == dogName
	}), nil
}

var _ Source = (*MemorySource)(nil)
