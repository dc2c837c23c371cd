package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/httperr"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/httpresp"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/usecase/analytics"
)

const (
	AnalyticsMonthly = "monthly"
	AnalyticsYearly  = "yearly"
	AnalyticsMembers = "members"
)

type AnalyticsHandler struct {
	analytics *analytics.MembershipAnalytics
}

func NewAnalyticsHandler(a *analytics.MembershipAnalytics) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: a}
}

// Memberships serves GET /api/memberships/analytics.
func (h *AnalyticsHandler) Memberships(c *gin.Context) {
	kind := c.DefaultQuery("type", AnalyticsMonthly)
	ctx := c.Request.Context()

	year := h.analytics.Now().Year()
	if s := c.Query("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 2000 || y > 2100 {
			httperr.BadRequest(c, "invalid_year", s)
			return
		}
		year = y
	}

	switch kind {
	case AnalyticsMonthly:
		stats, err := h.analytics.Monthly(ctx, year)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		httpresp.OK(c, gin.H{"success": true, "type": kind, "year": year, "data": stats})

	case AnalyticsYearly:
		stats, err := h.analytics.Yearly(ctx)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		httpresp.OK(c, gin.H{"success": true, "type": kind, "data": stats})

	case AnalyticsMembers:
		month, err := strconv.Atoi(c.Query("month"))
		if err != nil || month < 1 || month > 12 {
			httperr.BadRequest(c, "invalid_month", c.Query("month"))
			return
		}
		members, err := h.analytics.Members(ctx, year, month)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		httpresp.OK(c, gin.H{"success": true, "type": kind, "data": members})

	default:
		httperr.BadRequest(c, "invalid_type", kind)
	}
}
