package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/dto"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/httperr"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/httpresp"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/usecase/reconcile"
)

type AdminHandler struct {
	matchSessions *reconcile.MatchSessions
}

func NewAdminHandler(matchSessions *reconcile.MatchSessions) *AdminHandler {
	return &AdminHandler{matchSessions: matchSessions}
}

// ======================================================
// GET /api/admin/match-sessions
// ======================================================

// InspectSessions reports table shape and counts so an operator can judge
// a reconcile run before starting one.
func (h *AdminHandler) InspectSessions(c *gin.Context) {
	info, err := h.matchSessions.Inspect(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"success": true, "data": info})
}

// ======================================================
// POST /api/admin/match-sessions
// ======================================================

func (h *AdminHandler) MatchSessions(c *gin.Context) {
	var req dto.MatchSessionsRequest
	// An empty body is a preview of every session.
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &req) {
			return
		}
	}

	summary, err := h.matchSessions.Execute(c.Request.Context(), reconcile.MatchSessionsInput{
		DryRun:       req.IsDryRun(),
		OnlyUnlinked: req.OnlyUnlinked,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"success": true, "data": summary})
}
