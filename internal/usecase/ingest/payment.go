package ingest

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/audit"
	domainClient "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/client"
	domainMembership "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/membership"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/httperr"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/timezone"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/validators"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type PaymentInput struct {
	Email     string
	FirstName string
	LastName  string
	Date      string
	Amount    *float64
	Postcode  string
	Country   string
	Address   string

	// Source labels the history row, e.g. "payment" or "order".
	Source   string
	Metadata map[string]any
}

type PaymentResult struct {
	ClientID     uint    `json:"clientId"`
	ClientName   string  `json:"clientName"`
	IsNewClient  bool    `json:"isNewClient"`
	MembershipID uint    `json:"membershipId"`
	PaymentDate  string  `json:"paymentDate"`
	Amount       float64 `json:"amount"`
}

// ======================================================
// USE CASE
// ======================================================

type RecordPayment struct {
	resolver    *ClientResolver
	clients     domainClient.Repository
	memberships domainMembership.Repository
	audit       audit.Recorder
	loc         *time.Location
}

func NewRecordPayment(
	resolver *ClientResolver,
	clients domainClient.Repository,
	memberships domainMembership.Repository,
	audit audit.Recorder,
	loc *time.Location,
) *RecordPayment {
	return &RecordPayment{
		resolver:    resolver,
		clients:     clients,
		memberships: memberships,
		audit:       audit,
		loc:         loc,
	}
}

func (uc *RecordPayment) Execute(ctx context.Context, in PaymentInput) (*PaymentResult, error) {

	// --------------------------------------------------
	// 1. Validation (store untouched on failure)
	// --------------------------------------------------
	if err := requireEmail(in.Email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Date) == "" {
		return nil, httperr.ErrValidation("missing_date")
	}
	date, err := timezone.ParseDate(in.Date, uc.loc)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date")
	}
	amount, err := requireAmount(in.Amount)
	if err != nil {
		return nil, err
	}

	source := in.Source
	if source == "" {
		source = "payment"
	}

	var out *PaymentResult

	err = uc.resolver.WithEmailLock(ctx, in.Email, func(ctx context.Context) error {

		// --------------------------------------------------
		// 2. Client (find or create as member)
		// --------------------------------------------------
		client, created, err := uc.resolver.ResolveOrCreate(ctx, Seed{
			Email:     in.Email,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Postcode:  in.Postcode,
			Address:   in.Address,
		}, true)
		if err != nil {
			return err
		}

		// --------------------------------------------------
		// 3. Payment row + member flag
		// --------------------------------------------------
		row := &models.Membership{
			Email:  strings.TrimSpace(in.Email),
			Client: ComposeName(in.FirstName, in.LastName, client),
			Date:   date,
			Amount: amount,
		}
		if err := uc.memberships.CreateMembership(ctx, row); err != nil {
			return err
		}

		if !client.IsMember {
			if err := uc.clients.SetMembership(ctx, client.ID, true); err != nil {
				return err
			}
			client.IsMember = true
		}

		out = &PaymentResult{
			ClientID:     client.ID,
			ClientName:   client.DisplayName(),
			IsNewClient:  created,
			MembershipID: row.ID,
			PaymentDate:  date.Format("2006-01-02"),
			Amount:       amount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. History (best effort)
	// --------------------------------------------------
	meta := map[string]any{
		"amount":      amount,
		"paymentDate": out.PaymentDate,
		"isNewClient": out.IsNewClient,
	}
	if in.Country != "" {
		meta["country"] = in.Country
	}
	for k, v := range in.Metadata {
		meta[k] = v
	}
	uc.audit.Dispatch(audit.Event{
		Action:   "membership_payment",
		Source:   source,
		Entity:   "membership",
		EntityID: &out.MembershipID,
		Email:    validators.NormalizeEmail(in.Email),
		Metadata: meta,
	})

	return out, nil
}
