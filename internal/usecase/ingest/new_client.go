package ingest

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/audit"
	domainMembership "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/membership"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/httperr"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/validators"
)

type NewClientInput struct {
	ClientEmail string
	ClientName  string
	Amount      *float64
	PaymentDate string
}

type NewClientResult struct {
	ClientID     uint    `json:"clientId"`
	ClientName   string  `json:"clientName"`
	MembershipID uint    `json:"membershipId"`
	PaymentDate  string  `json:"paymentDate"`
	Amount       float64 `json:"amount"`
}

type ExistingClient struct {
	ClientID   uint   `json:"clientId"`
	ClientName string `json:"clientName"`
}

// CreateMemberClient is the signup path. An existing client for the email is
// a conflict so the caller moves to the renewal path.
type CreateMemberClient struct {
	resolver    *ClientResolver
	memberships domainMembership.Repository
	audit       audit.Recorder
	loc         *time.Location
	now         func() time.Time
}

func NewCreateMemberClient(
	resolver *ClientResolver,
	memberships domainMembership.Repository,
	audit audit.Recorder,
	loc *time.Location,
	now func() time.Time,
) *CreateMemberClient {
	return &CreateMemberClient{
		resolver:    resolver,
		memberships: memberships,
		audit:       audit,
		loc:         loc,
		now:         now,
	}
}

func (uc *CreateMemberClient) Execute(ctx context.Context, in NewClientInput) (*NewClientResult, error) {
	if err := requireEmail(in.ClientEmail); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ClientName) == "" {
		return nil, httperr.ErrValidation("missing_client_name")
	}
	amount, err := requireAmount(in.Amount)
	if err != nil {
		return nil, err
	}
	date, err := optionalDate(in.PaymentDate, uc.loc, uc.now())
	if err != nil {
		return nil, err
	}

	var out *NewClientResult

	err = uc.resolver.WithEmailLock(ctx, in.ClientEmail, func(ctx context.Context) error {
		existing, err := uc.resolver.FindByEmail(ctx, in.ClientEmail)
		if err != nil {
			return err
		}
		if existing != nil {
			return conflict(existing)
		}

		first, last := SplitName(in.ClientName)
		client, err := uc.resolver.Create(ctx, Seed{
			Email:     in.ClientEmail,
			FirstName: first,
			LastName:  last,
		}, true)
		if err != nil {
			if httperr.IsUniqueViolation(err) {
				if existing, ferr := uc.resolver.FindByEmail(ctx, in.ClientEmail); ferr == nil && existing != nil {
					return conflict(existing)
				}
			}
			return err
		}

		row := &models.Membership{
			Email:  strings.TrimSpace(in.ClientEmail),
			Client: strings.TrimSpace(in.ClientName),
			Date:   date,
			Amount: amount,
		}
		if err := uc.memberships.CreateMembership(ctx, row); err != nil {
			return err
		}

		out = &NewClientResult{
			ClientID:     client.ID,
			ClientName:   client.DisplayName(),
			MembershipID: row.ID,
			PaymentDate:  date.Format("2006-01-02"),
			Amount:       amount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "client_created",
		Source:   "new-client",
		Entity:   "client",
		EntityID: &out.ClientID,
		Email:    validators.NormalizeEmail(in.ClientEmail),
		Metadata: map[string]any{
			"membershipId": out.MembershipID,
			"amount":       out.Amount,
		},
	})

	return out, nil
}

func conflict(c *models.Client) error {
	return httperr.ErrConflict("client_already_exists", ExistingClient{
		ClientID:   c.ID,
		ClientName: c.DisplayName(),
	})
}
