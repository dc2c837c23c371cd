package audit

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

type Event struct {
	Action   string
	Source   string
	Entity   string
	EntityID *uint
	Email    string
	Metadata any
}

type Sink interface {
	Log(ctx context.Context, ev Event) error
}

// Logger persists events into audit_logs.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		Action:   ev.Action,
		Source:   ev.Source,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Email:    ev.Email,
		Metadata: metaJSON,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

var _ Sink = (*Logger)(nil)

// Recorder is what use cases depend on; *Dispatcher satisfies it.
type Recorder interface {
	Dispatch(ev Event)
}

var _ Recorder = (*Dispatcher)(nil)
