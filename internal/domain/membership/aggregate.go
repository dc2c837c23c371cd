package membership

import (
	"math"
	"time"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

type MonthStats struct {
	Year                    int     `json:"year"`
	Month                   int     `json:"month"`
	TotalMembers            int     `json:"totalMembers"`
	NewMembers              int     `json:"newMembers"`
	CancelledMembers        int     `json:"cancelledMembers"`
	NetChange               int     `json:"netChange"`
	MonthlyRecurringRevenue float64 `json:"monthlyRecurringRevenue"`
	GrowthPercentage        float64 `json:"growthPercentage"`
}

type YearStats struct {
	Year                     int     `json:"year"`
	TotalMembers             int     `json:"totalMembers"`
	TotalMRR                 float64 `json:"totalMRR"`
	GrowthFromPreviousYear   float64 `json:"growthFromPreviousYear"`
	NewMembersThisYear       int     `json:"newMembersThisYear"`
	CancelledMembersThisYear int     `json:"cancelledMembersThisYear"`
}

// Amounts are summed in pence so monthly and yearly totals agree exactly.
type bucket struct {
	count int
	pence int64
}

type yearMonth struct {
	year  int
	month time.Month
}

func ToPence(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func FromPence(p int64) float64 {
	return float64(p) / 100
}

// growth is (cur-prev)/prev*100 rounded to two places, 0 when prev is 0.
func growth(cur, prev int) float64 {
	if prev == 0 {
		return 0
	}
	g := float64(cur-prev) / float64(prev) * 100
	return math.Round(g*100) / 100
}

// Membership.Date is a calendar date; its own components are the bucket
// key. Attribution does not take part in counting: an unattributed row
// still counts for its month and year.
func byMonth(rows []models.Membership) map[yearMonth]bucket {
	out := make(map[yearMonth]bucket)
	for _, r := range rows {
		k := yearMonth{year: r.Date.Year(), month: r.Date.Month()}
		b := out[k]
		b.count++
		b.pence += ToPence(r.Amount)
		out[k] = b
	}
	return out
}

func byYear(rows []models.Membership) map[int]bucket {
	out := make(map[int]bucket)
	for _, r := range rows {
		b := out[r.Date.Year()]
		b.count++
		b.pence += ToPence(r.Amount)
		out[r.Date.Year()] = b
	}
	return out
}

// Monthly returns stats for months 1..12 of year. January compares against
// December of the previous year, so rows from that month should be present.
func Monthly(rows []models.Membership, year int) []MonthStats {
	buckets := byMonth(rows)

	out := make([]MonthStats, 0, 12)
	for m := time.January; m <= time.December; m++ {
		cur := buckets[yearMonth{year: year, month: m}]

		prevYear, prevMonth := year, m-1
		if m == time.January {
			prevYear, prevMonth = year-1, time.December
		}
		prev := buckets[yearMonth{year: prevYear, month: prevMonth}]

		out = append(out, MonthStats{
			Year:                    year,
			Month:                   int(m),
			TotalMembers:            cur.count,
			NewMembers:              cur.count,
			CancelledMembers:        0,
			NetChange:               cur.count - prev.count,
			MonthlyRecurringRevenue: FromPence(cur.pence),
			GrowthPercentage:        growth(cur.count, prev.count),
		})
	}
	return out
}

// Yearly returns one entry per year from the earliest row through now's
// year. No rows means no years.
func Yearly(rows []models.Membership, now time.Time) []YearStats {
	if len(rows) == 0 {
		return []YearStats{}
	}

	earliest := rows[0].Date.Year()
	for _, r := range rows[1:] {
		if y := r.Date.Year(); y < earliest {
			earliest = y
		}
	}

	buckets := byYear(rows)
	last := now.Year()

	out := make([]YearStats, 0, last-earliest+1)
	for y := earliest; y <= last; y++ {
		cur := buckets[y]

		var g float64
		if y > earliest {
			g = growth(cur.count, buckets[y-1].count)
		}

		out = append(out, YearStats{
			Year:                     y,
			TotalMembers:             cur.count,
			TotalMRR:                 FromPence(cur.pence),
			GrowthFromPreviousYear:   g,
			NewMembersThisYear:       cur.count,
			CancelledMembersThisYear: 0,
		})
	}
	return out
}
