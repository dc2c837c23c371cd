package session

import (
	"context"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

type Repository interface {
	ListSessions(ctx context.Context) ([]models.Session, error)
	ListUnlinkedSessions(ctx context.Context) ([]models.Session, error)
	ListSessionsForClient(ctx context.Context, clientID uint) ([]models.Session, error)

	LinkSession(ctx context.Context, link Link) error

	Inspect(ctx context.Context) (*Inspection, error)
}

// Link is the update written for one reconciled session.
type Link struct {
	SessionID  uint
	ClientID   uint
	ClientName string
	DogName    string
}

type ColumnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

type TableInfo struct {
	Name    string       `json:"name"`
	Columns []ColumnInfo `json:"columns"`
}

// Inspection backs the admin reconcile screen.
type Inspection struct {
	Tables            []TableInfo `json:"tables"`
	SessionCount      int64       `json:"sessionCount"`
	ClientCount       int64       `json:"clientCount"`
	UnlinkedSessions  int64       `json:"unlinkedSessions"`
	SessionsWithEmail int64       `json:"sessionsWithEmail"`
}
