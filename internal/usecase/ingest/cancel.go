package ingest

import (
	"context"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/audit"
	domainClient "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/client"
	domainMembership "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/membership"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/validators"
)

type CancelResult struct {
	ClientID              uint   `json:"clientId"`
	ClientName            string `json:"clientName"`
	CancellationProcessed bool   `json:"cancellationProcessed"`
	AlreadyCancelled      bool   `json:"alreadyCancelled"`
}

// CancelMembership flips the member flag off. Cancelling a non-member is a
// success that reports alreadyCancelled.
type CancelMembership struct {
	resolver *ClientResolver
	clients  domainClient.Repository
	audit    audit.Recorder
}

func NewCancelMembership(
	resolver *ClientResolver,
	clients domainClient.Repository,
	audit audit.Recorder,
) *CancelMembership {
	return &CancelMembership{
		resolver: resolver,
		clients:  clients,
		audit:    audit,
	}
}

func (uc *CancelMembership) Execute(ctx context.Context, email string) (*CancelResult, error) {
	if err := requireEmail(email); err != nil {
		return nil, err
	}

	client, err := uc.resolver.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domainClient.ErrClientNotFound
	}

	out := &CancelResult{
		ClientID:   client.ID,
		ClientName: client.DisplayName(),
	}

	_, changed := domainMembership.Apply(domainMembership.StatusOf(client.IsMember), domainMembership.TransitionCancel)
	if !changed {
		out.AlreadyCancelled = true
		return out, nil
	}

	if err := uc.clients.SetMembership(ctx, client.ID, false); err != nil {
		return nil, err
	}
	out.CancellationProcessed = true

	uc.audit.Dispatch(audit.Event{
		Action:   "membership_cancelled",
		Source:   "cancel",
		Entity:   "client",
		EntityID: &out.ClientID,
		Email:    validators.NormalizeEmail(email),
	})

	return out, nil
}
