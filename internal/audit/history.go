package audit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

// Filter narrows the history listing. Zero values are ignored; To is
// exclusive.
type Filter struct {
	Action string
	Entity string
	Email  string
	From   *time.Time
	To     *time.Time

	Limit  int
	Offset int
}

// History reads back what the dispatcher wrote.
type History interface {
	List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}

func (l *Logger) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	q := l.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.Email != "" {
		q = q.Where("email = ?", f.Email)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

var _ History = (*Logger)(nil)
