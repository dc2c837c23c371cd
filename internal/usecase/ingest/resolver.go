package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainClient "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/client"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/httperr"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/lock"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/validators"
)

const UnknownName = "Unknown"

// Seed is whatever an inbound event knows about the client.
type Seed struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Postcode  string
	Address   string
	DogName   string
}

// ClientResolver owns the find-or-create-by-email step. The whole
// read-decide-write runs under a per-email lock, and a unique violation on
// insert falls back to the row that won.
type ClientResolver struct {
	clients domainClient.Repository
	matcher *domainClient.Matcher
	locker  lock.Locker
	now     func() time.Time
}

func NewClientResolver(
	clients domainClient.Repository,
	locker lock.Locker,
	now func() time.Time,
) *ClientResolver {
	return &ClientResolver{
		clients: clients,
		matcher: domainClient.NewMatcher(clients, domainClient.EmailOnly()...),
		locker:  locker,
		now:     now,
	}
}

// FindByEmail returns nil, nil when no client has the email.
func (r *ClientResolver) FindByEmail(ctx context.Context, email string) (*models.Client, error) {
	return r.matcher.Match(ctx, domainClient.Criteria{Email: email})
}

// WithEmailLock runs fn while holding the lock for email.
func (r *ClientResolver) WithEmailLock(ctx context.Context, email string, fn func(ctx context.Context) error) error {
	unlock, err := r.locker.Lock(ctx, lock.EmailKey(email))
	if err != nil {
		return fmt.Errorf("lock %s: %w", validators.NormalizeEmail(email), err)
	}
	defer unlock()

	return fn(ctx)
}

// ResolveOrCreate must be called under WithEmailLock. activePaid marks a
// newly created client as a member.
func (r *ClientResolver) ResolveOrCreate(ctx context.Context, seed Seed, activePaid bool) (*models.Client, bool, error) {
	existing, err := r.FindByEmail(ctx, seed.Email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	c, err := r.Create(ctx, seed, activePaid)
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			existing, ferr := r.FindByEmail(ctx, seed.Email)
			if ferr != nil {
				return nil, false, ferr
			}
			if existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}
	return c, true, nil
}

// Create inserts a minimal client from seed, filling placeholders for
// unknown display fields.
func (r *ClientResolver) Create(ctx context.Context, seed Seed, isMember bool) (*models.Client, error) {
	email := validators.NormalizeEmail(seed.Email)
	now := r.now()

	c := &models.Client{
		OwnerFirstName: orUnknown(seed.FirstName),
		OwnerLastName:  orUnknown(seed.LastName),
		ContactEmail:   &email,
		Postcode:       strings.TrimSpace(seed.Postcode),
		Address:        strings.TrimSpace(seed.Address),
		DogName:        strings.TrimSpace(seed.DogName),
		IsMember:       isMember,
		Active:         true,
		SubmittedAt:    &now,
	}
	if phone := strings.TrimSpace(seed.Phone); phone != "" {
		c.ContactNumber = &phone
	}

	if err := r.clients.CreateClient(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return UnknownName
}

// SplitName turns a free-text display name into first and last name. The
// first token is the first name, the rest is the surname.
func SplitName(full string) (first, last string) {
	fields := strings.Fields(full)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}

// ComposeName is the display name written on a Membership row.
func ComposeName(first, last string, fallback *models.Client) string {
	name := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if name != "" {
		return name
	}
	if fallback != nil {
		return fallback.DisplayName()
	}
	return UnknownName
}
