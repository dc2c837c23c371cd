package analytics

import (
	"context"
	"fmt"
	"time"

	domainClient "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/client"
	domainMembership "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/membership"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

type MemberPayment struct {
	MembershipID uint                         `json:"membershipId"`
	Email        string                       `json:"email"`
	Client       string                       `json:"client"`
	Date         string                       `json:"date"`
	Amount       float64                      `json:"amount"`
	Attribution  domainMembership.Attribution `json:"attribution"`
}

type MonthMembers struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Members  []MemberPayment `json:"members"`
	Total    int             `json:"total"`
	Revenue  float64         `json:"revenue"`
	Unlinked int             `json:"unlinked"`
}

// MembershipAnalytics loads payment rows and clients and hands them to the
// pure aggregation in domain/membership. Any read failure aborts.
type MembershipAnalytics struct {
	memberships domainMembership.Repository
	clients     domainClient.Repository
	overrides   domainClient.OverrideTable
	loc         *time.Location
	now         func() time.Time
}

func NewMembershipAnalytics(
	memberships domainMembership.Repository,
	clients domainClient.Repository,
	overrides domainClient.OverrideTable,
	loc *time.Location,
	now func() time.Time,
) *MembershipAnalytics {
	return &MembershipAnalytics{
		memberships: memberships,
		clients:     clients,
		overrides:   overrides,
		loc:         loc,
		now:         now,
	}
}

func (uc *MembershipAnalytics) Now() time.Time {
	return uc.now().In(uc.loc)
}

// Monthly loads rows from December of the previous year so January has a
// comparison month.
func (uc *MembershipAnalytics) Monthly(ctx context.Context, year int) ([]domainMembership.MonthStats, error) {
	since := time.Date(year-1, time.December, 1, 0, 0, 0, 0, uc.loc)

	rows, err := uc.memberships.ListMembershipsSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("load memberships: %w", err)
	}
	return domainMembership.Monthly(rows, year), nil
}

func (uc *MembershipAnalytics) Yearly(ctx context.Context) ([]domainMembership.YearStats, error) {
	rows, err := uc.memberships.ListMemberships(ctx)
	if err != nil {
		return nil, fmt.Errorf("load memberships: %w", err)
	}
	return domainMembership.Yearly(rows, uc.Now()), nil
}

// Members is the drill-down for one month with each row attributed to a
// client for display.
func (uc *MembershipAnalytics) Members(ctx context.Context, year, month int) (*MonthMembers, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.loc)
	to := from.AddDate(0, 1, 0)

	rows, err := uc.memberships.ListMembershipsBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load memberships: %w", err)
	}

	clients, err := uc.clients.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}

	attributor := domainMembership.NewAttributor(clients, uc.overrides)

	out := &MonthMembers{
		Year:    year,
		Month:   month,
		Members: make([]MemberPayment, 0, len(rows)),
	}

	var pence int64
	for _, r := range rows {
		a := attributor.Describe(r)
		if a.ClientID == nil {
			out.Unlinked++
		}
		pence += domainMembership.ToPence(r.Amount)

		out.Members = append(out.Members, MemberPayment{
			MembershipID: r.ID,
			Email:        r.Email,
			Client:       r.Client,
			Date:         r.Date.Format("2006-01-02"),
			Amount:       r.Amount,
			Attribution:  a,
		})
	}
	out.Total = len(rows)
	out.Revenue = domainMembership.FromPence(pence)

	return out, nil
}

// PaymentsForClient lists the rows whose email equals the client's email.
func (uc *MembershipAnalytics) PaymentsForClient(ctx context.Context, c *models.Client) ([]models.Membership, error) {
	if c.Email() == "" {
		return []models.Membership{}, nil
	}
	return uc.memberships.ListMembershipsForEmail(ctx, c.Email())
}
