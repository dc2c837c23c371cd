package intake

import (
	"context"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/httperr"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

var ErrDocumentNotFound = httperr.ErrNotFound("document_not_found")

// Repository stores intake documents. Documents are written once and
// linked from the owning client.
type Repository interface {
	CreateBrief(ctx context.Context, b *models.BehaviouralBrief) error
	CreateQuestionnaire(ctx context.Context, q *models.BehaviourQuestionnaire) error

	GetBrief(ctx context.Context, id uint) (*models.BehaviouralBrief, error)
	GetQuestionnaire(ctx context.Context, id uint) (*models.BehaviourQuestionnaire, error)
}
