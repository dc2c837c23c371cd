package intake

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/audit"
	domainClient "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/client"
	domainIntake "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/intake"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/usecase/ingest"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/validators"
)

// Owner is the contact block shared by both public forms.
type Owner struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Postcode  string
	Address   string
	DogName   string
}

type Result struct {
	ClientID    uint `json:"clientId"`
	DocumentID  uint `json:"documentId"`
	IsNewClient bool `json:"isNewClient"`
}

// Submit stores public intake forms. The client is found or created by
// email; intake never changes membership.
type Submit struct {
	resolver *ingest.ClientResolver
	clients  domainClient.Repository
	intake   domainIntake.Repository
	audit    audit.Recorder
	now      func() time.Time
}

func NewSubmit(
	resolver *ingest.ClientResolver,
	clients domainClient.Repository,
	intake domainIntake.Repository,
	audit audit.Recorder,
	now func() time.Time,
) *Submit {
	return &Submit{
		resolver: resolver,
		clients:  clients,
		intake:   intake,
		audit:    audit,
		now:      now,
	}
}

func (uc *Submit) Brief(ctx context.Context, owner Owner, brief models.BehaviouralBrief) (*Result, error) {
	return uc.submit(ctx, owner, "behavioural_brief", func(ctx context.Context, c *models.Client) (uint, error) {
		brief.ID = 0
		brief.ClientID = c.ID
		brief.SubmittedAt = uc.now()
		if brief.DogName == "" {
			brief.DogName = owner.DogName
		}
		if err := uc.intake.CreateBrief(ctx, &brief); err != nil {
			return 0, err
		}
		c.BehaviouralBriefID = &brief.ID
		return brief.ID, nil
	})
}

func (uc *Submit) Questionnaire(ctx context.Context, owner Owner, q models.BehaviourQuestionnaire) (*Result, error) {
	return uc.submit(ctx, owner, "behaviour_questionnaire", func(ctx context.Context, c *models.Client) (uint, error) {
		q.ID = 0
		q.ClientID = c.ID
		q.SubmittedAt = uc.now()
		if q.DogName == "" {
			q.DogName = owner.DogName
		}
		if err := uc.intake.CreateQuestionnaire(ctx, &q); err != nil {
			return 0, err
		}
		c.BehaviourQuestionnaireID = &q.ID
		return q.ID, nil
	})
}

func (uc *Submit) submit(
	ctx context.Context,
	owner Owner,
	entity string,
	create func(ctx context.Context, c *models.Client) (uint, error),
) (*Result, error) {

	var out *Result

	err := uc.resolver.WithEmailLock(ctx, owner.Email, func(ctx context.Context) error {
		c, created, err := uc.resolver.ResolveOrCreate(ctx, ingest.Seed{
			Email:     owner.Email,
			FirstName: owner.FirstName,
			LastName:  owner.LastName,
			Phone:     owner.Phone,
			Postcode:  owner.Postcode,
			Address:   owner.Address,
			DogName:   owner.DogName,
		}, false)
		if err != nil {
			return err
		}

		if !created {
			fillBlanks(c, owner)
		}

		docID, err := create(ctx, c)
		if err != nil {
			return fmt.Errorf("create %s: %w", entity, err)
		}

		if err := uc.clients.UpdateClient(ctx, c); err != nil {
			return err
		}

		out = &Result{ClientID: c.ID, DocumentID: docID, IsNewClient: created}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   entity + "_submitted",
		Source:   "intake",
		Entity:   entity,
		EntityID: &out.DocumentID,
		Email:    validators.NormalizeEmail(owner.Email),
		Metadata: map[string]any{"clientId": out.ClientID, "isNewClient": out.IsNewClient},
	})

	return out, nil
}

// fillBlanks copies form values onto an existing client only where the
// stored value is empty or a placeholder.
func fillBlanks(c *models.Client, o Owner) {
	set := func(dst *string, v string) {
		v = strings.TrimSpace(v)
		if v != "" && (*dst == "" || *dst == ingest.UnknownName) {
			*dst = v
		}
	}
	set(&c.OwnerFirstName, o.FirstName)
	set(&c.OwnerLastName, o.LastName)
	set(&c.Postcode, o.Postcode)
	set(&c.Address, o.Address)
	set(&c.DogName, o.DogName)

	if phone := strings.TrimSpace(o.Phone); phone != "" && c.ContactNumber == nil {
		c.ContactNumber = &phone
	}
}
