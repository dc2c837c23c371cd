package membership

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func row(email string, d time.Time, amount float64) models.Membership {
	return models.Membership{Email: email, Client: "Someone", Date: d, Amount: amount}
}

func TestMonthly_CountsRowInItsMonth(t *testing.T) {
	rows := []models.Membership{row("a@x.com", date(2025, time.March, 15), 25.00)}

	stats := Monthly(rows, 2025)

	require.Len(t, stats, 12)
	march := stats[2]
	assert.Equal(t, 3, march.Month)
	assert.Equal(t, 1, march.TotalMembers)
	assert.Equal(t, 1, march.NewMembers)
	assert.Equal(t, 0, march.CancelledMembers)
	assert.Equal(t, 1, march.NetChange)
	assert.Equal(t, 25.00, march.MonthlyRecurringRevenue)
	assert.Equal(t, 0.0, march.GrowthPercentage, "February had no rows")

	april := stats[3]
	assert.Equal(t, 0, april.TotalMembers)
	assert.Equal(t, -1, april.NetChange)
	assert.Equal(t, -100.0, april.GrowthPercentage)
}

func TestMonthly_JanuaryComparesWithPreviousDecember(t *testing.T) {
	rows := []models.Membership{
		row("a@x.com", date(2024, time.December, 5), 20),
		row("b@x.com", date(2024, time.December, 9), 20),
		row("a@x.com", date(2025, time.January, 5), 20),
		row("b@x.com", date(2025, time.January, 9), 20),
		row("c@x.com", date(2025, time.January, 20), 20),
	}

	jan := Monthly(rows, 2025)[0]

	assert.Equal(t, 3, jan.TotalMembers)
	assert.Equal(t, 1, jan.NetChange)
	assert.Equal(t, 50.0, jan.GrowthPercentage)
}

func TestMonthly_GrowthIsRoundedToTwoPlaces(t *testing.T) {
	rows := []models.Membership{
		row("a@x.com", date(2025, time.May, 1), 10),
		row("b@x.com", date(2025, time.May, 2), 10),
		row("c@x.com", date(2025, time.May, 3), 10),
		row("a@x.com", date(2025, time.June, 1), 10),
		row("b@x.com", date(2025, time.June, 2), 10),
		row("c@x.com", date(2025, time.June, 3), 10),
		row("d@x.com", date(2025, time.June, 4), 10),
	}

	june := Monthly(rows, 2025)[5]
	assert.Equal(t, 33.33, june.GrowthPercentage)
}

func TestMonthlyAndYearlyAgree(t *testing.T) {
	rows := []models.Membership{
		row("a@x.com", date(2025, time.January, 3), 19.99),
		row("b@x.com", date(2025, time.January, 7), 0.1),
		row("c@x.com", date(2025, time.February, 1), 0.2),
		row("a@x.com", date(2025, time.June, 3), 19.99),
		row("d@x.com", date(2025, time.December, 31), 33.33),
	}

	var monthlyPence int64
	var monthlyCount int
	for _, m := range Monthly(rows, 2025) {
		monthlyPence += ToPence(m.MonthlyRecurringRevenue)
		monthlyCount += m.TotalMembers
	}

	years := Yearly(rows, date(2025, time.July, 1))
	require.Len(t, years, 1)
	assert.Equal(t, FromPence(monthlyPence), years[0].TotalMRR)
	assert.Equal(t, 73.61, years[0].TotalMRR)
	assert.Equal(t, monthlyCount, years[0].TotalMembers)
}

func TestYearly(t *testing.T) {
	rows := []models.Membership{
		row("a@x.com", date(2023, time.May, 1), 10),
		row("a@x.com", date(2023, time.June, 1), 10),
		row("a@x.com", date(2025, time.May, 1), 10),
	}

	years := Yearly(rows, date(2026, time.February, 1))

	require.Len(t, years, 4)
	assert.Equal(t, []int{2023, 2024, 2025, 2026}, []int{years[0].Year, years[1].Year, years[2].Year, years[3].Year})

	assert.Equal(t, 2, years[0].TotalMembers)
	assert.Equal(t, 0.0, years[0].GrowthFromPreviousYear, "earliest year has no comparison")
	assert.Equal(t, -100.0, years[1].GrowthFromPreviousYear)
	assert.Equal(t, 0.0, years[2].GrowthFromPreviousYear, "previous year count is zero")
	assert.Equal(t, 0, years[3].TotalMembers)
	assert.Equal(t, 0, years[3].CancelledMembersThisYear)
}

func TestYearly_NoRows(t *testing.T) {
	years := Yearly(nil, date(2025, time.January, 1))
	assert.NotNil(t, years)
	assert.Empty(t, years)
}
