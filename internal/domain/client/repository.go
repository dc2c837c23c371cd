package client

import (
	"context"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/httperr"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

var ErrClientNotFound = httperr.ErrNotFound("client_not_found")

// Source answers the single-criterion lookups the Matcher chains together.
type Source interface {
	// ClientsByEmail is case-insensitive equality on contact_email.
	ClientsByEmail(ctx context.Context, email string) ([]models.Client, error)
	// ClientsByPhone is exact equality on contact_number.
	ClientsByPhone(ctx context.Context, phone string) ([]models.Client, error)
	// ClientsByFirstName is a case-insensitive substring match on owner_first_name.
	ClientsByFirstName(ctx context.Context, fragment string) ([]models.Client, error)
	// ClientsByDogName is exact equality on dog_name.
	ClientsByDogName(ctx context.Context, dogName string) ([]models.Client, error)
}

type Repository interface {
	Source

	// -------- Bulk --------
	ListClients(ctx context.Context) ([]models.Client, error)
	SearchClients(ctx context.Context, query string) ([]models.Client, error)

	// -------- Single record --------
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	CreateClient(ctx context.Context, c *models.Client) error
	UpdateClient(ctx context.Context, c *models.Client) error
	DeleteClient(ctx context.Context, id uint) error
	SetMembership(ctx context.Context, id uint, isMember bool) error
}
