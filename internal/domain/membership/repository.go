package membership

import (
	"context"
	"time"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

type Repository interface {
	ListMemberships(ctx context.Context) ([]models.Membership, error)
	// ListMembershipsSince returns rows with date >= since.
	ListMembershipsSince(ctx context.Context, since time.Time) ([]models.Membership, error)
	// ListMembershipsBetween returns rows with from <= date < to.
	ListMembershipsBetween(ctx context.Context, from, to time.Time) ([]models.Membership, error)
	ListMembershipsForEmail(ctx context.Context, email string) ([]models.Membership, error)

	CreateMembership(ctx context.Context, m *models.Membership) error
}
