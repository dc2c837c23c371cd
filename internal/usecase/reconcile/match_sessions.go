package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/audit"
	domainClient "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/client"
	domainSession "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/session"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/metrics"
)

// PreviewLimit caps how many matched and unmatched entries are returned.
const PreviewLimit = 10

const (
	ModePreview = "preview"
	ModeApplied = "applied"
)

type MatchSessionsInput struct {
	DryRun       bool
	OnlyUnlinked bool
}

type UpdateResults struct {
	Success int `json:"success"`
	Errors  int `json:"errors"`
}

type Summary struct {
	Mode             string                    `json:"mode"`
	DryRun           bool                      `json:"dryRun"`
	TotalSessions    int                       `json:"totalSessions"`
	TotalClients     int                       `json:"totalClients"`
	MatchedCount     int                       `json:"matchedCount"`
	UnmatchedCount   int                       `json:"unmatchedCount"`
	NeedsUpdateCount int                       `json:"needsUpdateCount"`
	UpdateResults    *UpdateResults            `json:"updateResults,omitempty"`
	Matched          []domainSession.Matched   `json:"matched"`
	Unmatched        []domainSession.Unmatched `json:"unmatched"`
	HasMoreMatched   bool                      `json:"hasMoreMatched"`
	HasMoreUnmatched bool                      `json:"hasMoreUnmatched"`
}

type MatchSessions struct {
	clients  domainClient.Repository
	sessions domainSession.Repository
	audit    audit.Recorder
}

func NewMatchSessions(
	clients domainClient.Repository,
	sessions domainSession.Repository,
	audit audit.Recorder,
) *MatchSessions {
	return &MatchSessions{
		clients:  clients,
		sessions: sessions,
		audit:    audit,
	}
}

// Execute loads everything, reconciles in memory and, unless DryRun, writes
// the links. A read failure aborts; a failed row update is counted and the
// batch continues.
func (uc *MatchSessions) Execute(ctx context.Context, in MatchSessionsInput) (*Summary, error) {
	clients, err := uc.clients.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}

	load := uc.sessions.ListSessions
	if in.OnlyUnlinked {
		load = uc.sessions.ListUnlinkedSessions
	}
	sessions, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	res := domainSession.Reconcile(sessions, clients)
	pending := res.NeedsUpdate()

	out := &Summary{
		Mode:             ModePreview,
		DryRun:           in.DryRun,
		TotalSessions:    len(sessions),
		TotalClients:     len(clients),
		MatchedCount:     len(res.Matched),
		UnmatchedCount:   len(res.Unmatched),
		NeedsUpdateCount: len(pending),
		Matched:          head(res.Matched, PreviewLimit),
		Unmatched:        head(res.Unmatched, PreviewLimit),
		HasMoreMatched:   len(res.Matched) > PreviewLimit,
		HasMoreUnmatched: len(res.Unmatched) > PreviewLimit,
	}

	if in.DryRun {
		metrics.SessionReconcile.WithLabelValues(ModePreview, "matched").Add(float64(out.MatchedCount))
		metrics.SessionReconcile.WithLabelValues(ModePreview, "unmatched").Add(float64(out.UnmatchedCount))
		return out, nil
	}

	out.Mode = ModeApplied
	results := &UpdateResults{}

	for _, m := range pending {
		err := uc.sessions.LinkSession(ctx, domainSession.Link{
			SessionID:  m.SessionID,
			ClientID:   m.ClientID,
			ClientName: m.ClientName,
			DogName:    m.DogName,
		})
		if err != nil {
			results.Errors++
			slog.Warn("session link failed",
				"session_id", m.SessionID,
				"client_id", m.ClientID,
				"error", err,
			)
			continue
		}
		results.Success++
	}
	out.UpdateResults = results

	metrics.SessionReconcile.WithLabelValues(ModeApplied, "linked").Add(float64(results.Success))
	metrics.SessionReconcile.WithLabelValues(ModeApplied, "failed").Add(float64(results.Errors))

	uc.audit.Dispatch(audit.Event{
		Action: "sessions_reconciled",
		Source: "admin",
		Entity: "session",
		Metadata: map[string]any{
			"matched":   out.MatchedCount,
			"unmatched": out.UnmatchedCount,
			"success":   results.Success,
			"errors":    results.Errors,
		},
	})

	return out, nil
}

func (uc *MatchSessions) Inspect(ctx context.Context) (*domainSession.Inspection, error) {
	return uc.sessions.Inspect(ctx)
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		s = s[:n]
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
