package ingest

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/audit"
	domainClient "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/client"
	domainMembership "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/membership"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/validators"
)

type MembershipStatusInput struct {
	ClientEmail      string
	ClientName       string
	Amount           *float64
	MembershipStatus string
	PaymentDate      string
}

type MembershipStatusResult struct {
	ClientID         uint    `json:"clientId"`
	ClientName       string  `json:"clientName"`
	MembershipStatus string  `json:"membershipStatus"`
	PreviousStatus   string  `json:"previousStatus"`
	StatusChanged    bool    `json:"statusChanged"`
	MembershipID     *uint   `json:"membershipId,omitempty"`
	PaymentDate      string  `json:"paymentDate,omitempty"`
	Amount           float64 `json:"amount,omitempty"`
}

// ApplyMembershipStatus moves an existing client between member and
// non-member. It never creates clients.
type ApplyMembershipStatus struct {
	resolver    *ClientResolver
	clients     domainClient.Repository
	memberships domainMembership.Repository
	audit       audit.Recorder
	loc         *time.Location
	now         func() time.Time
}

func NewApplyMembershipStatus(
	resolver *ClientResolver,
	clients domainClient.Repository,
	memberships domainMembership.Repository,
	audit audit.Recorder,
	loc *time.Location,
	now func() time.Time,
) *ApplyMembershipStatus {
	return &ApplyMembershipStatus{
		resolver:    resolver,
		clients:     clients,
		memberships: memberships,
		audit:       audit,
		loc:         loc,
		now:         now,
	}
}

func (uc *ApplyMembershipStatus) Execute(ctx context.Context, in MembershipStatusInput) (*MembershipStatusResult, error) {
	if err := requireEmail(in.ClientEmail); err != nil {
		return nil, err
	}

	transition, err := domainMembership.ParseTransition(strings.ToLower(strings.TrimSpace(in.MembershipStatus)))
	if err != nil {
		return nil, err
	}

	var (
		amount float64
		date   time.Time
	)
	if transition.InsertsPayment() {
		if amount, err = requireAmount(in.Amount); err != nil {
			return nil, err
		}
		if date, err = optionalDate(in.PaymentDate, uc.loc, uc.now()); err != nil {
			return nil, err
		}
	}

	client, err := uc.resolver.FindByEmail(ctx, in.ClientEmail)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domainClient.ErrClientNotFound
	}

	prev := domainMembership.StatusOf(client.IsMember)
	next, changed := domainMembership.Apply(prev, transition)

	out := &MembershipStatusResult{
		ClientID:         client.ID,
		ClientName:       client.DisplayName(),
		MembershipStatus: string(next),
		PreviousStatus:   string(prev),
		StatusChanged:    changed,
	}

	if transition.InsertsPayment() {
		name := strings.TrimSpace(in.ClientName)
		if name == "" {
			name = client.DisplayName()
		}

		row := &models.Membership{
			Email:  strings.TrimSpace(in.ClientEmail),
			Client: name,
			Date:   date,
			Amount: amount,
		}
		if err := uc.memberships.CreateMembership(ctx, row); err != nil {
			return nil, err
		}
		out.MembershipID = &row.ID
		out.PaymentDate = date.Format("2006-01-02")
		out.Amount = amount
	}

	if changed {
		if err := uc.clients.SetMembership(ctx, client.ID, next == domainMembership.StatusMember); err != nil {
			return nil, err
		}
	}

	action := "membership_renewed"
	if transition == domainMembership.TransitionCancel {
		action = "membership_cancelled"
	}
	uc.audit.Dispatch(audit.Event{
		Action:   action,
		Source:   "membership",
		Entity:   "client",
		EntityID: &out.ClientID,
		Email:    validators.NormalizeEmail(in.ClientEmail),
		Metadata: map[string]any{
			"previousStatus": out.PreviousStatus,
			"statusChanged":  out.StatusChanged,
			"amount":         out.Amount,
		},
	})

	return out, nil
}
