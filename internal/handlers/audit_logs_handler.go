package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/audit"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/httperr"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/timezone"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	history audit.History
	loc     *time.Location
}

func NewAuditLogsHandler(history audit.History, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{history: history, loc: loc}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Email:  validators.NormalizeEmail(c.Query("email")),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	// --------------------------------------------------
	// Date range (calendar days, "to" inclusive)
	// --------------------------------------------------

	if s := c.Query("from"); s != "" {
		from, err := timezone.ParseDate(s, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", s)
			return
		}
		f.From = &from
	}

	if s := c.Query("to"); s != "" {
		to, err := timezone.ParseDate(s, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", s)
			return
		}
		end := to.AddDate(0, 0, 1)
		f.To = &end
	}

	logs, total, err := h.history.List(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", err.Error())
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
