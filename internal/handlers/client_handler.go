package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/audit"
	domainClient "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/client"
	domainIntake "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/intake"
	domainMembership "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/membership"
	domainSession "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/session"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/dto"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/httperr"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/httpresp"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/validators"
)

type ClientHandler struct {
	clients     domainClient.Repository
	sessions    domainSession.Repository
	memberships domainMembership.Repository
	intake      domainIntake.Repository
	matcher     *domainClient.Matcher
	audit       audit.Recorder
}

func NewClientHandler(
	clients domainClient.Repository,
	sessions domainSession.Repository,
	memberships domainMembership.Repository,
	intake domainIntake.Repository,
	audit audit.Recorder,
) *ClientHandler {
	return &ClientHandler{
		clients:     clients,
		sessions:    sessions,
		memberships: memberships,
		intake:      intake,
		matcher:     domainClient.NewMatcher(clients),
		audit:       audit,
	}
}

type ClientDetail struct {
	Client                 models.Client                  `json:"client"`
	BehaviouralBrief       *models.BehaviouralBrief       `json:"behaviouralBrief"`
	BehaviourQuestionnaire *models.BehaviourQuestionnaire `json:"behaviourQuestionnaire"`
	Sessions               []models.Session               `json:"sessions"`
	Payments               []models.Membership            `json:"payments"`
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", c.Param("id"))
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// LIST CLIENTS
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))

	clients, err := h.clients.SearchClients(c.Request.Context(), query)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// CLIENT DETAIL
// ======================================================

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	detail, err := h.detail(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, detail)
}

func (h *ClientHandler) detail(ctx context.Context, id uint) (*ClientDetail, error) {
	client, err := h.clients.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &ClientDetail{Client: *client}

	if client.BehaviouralBriefID != nil {
		b, err := h.intake.GetBrief(ctx, *client.BehaviouralBriefID)
		if err != nil && !errors.Is(err, domainIntake.ErrDocumentNotFound) {
			return nil, err
		}
		out.BehaviouralBrief = b
	}

	if client.BehaviourQuestionnaireID != nil {
		q, err := h.intake.GetQuestionnaire(ctx, *client.BehaviourQuestionnaireID)
		if err != nil && !errors.Is(err, domainIntake.ErrDocumentNotFound) {
			return nil, err
		}
		out.BehaviourQuestionnaire = q
	}

	if out.Sessions, err = h.sessions.ListSessionsForClient(ctx, id); err != nil {
		return nil, err
	}

	if email := client.Email(); email != "" {
		if out.Payments, err = h.memberships.ListMembershipsForEmail(ctx, email); err != nil {
			return nil, err
		}
	}

	if out.Sessions == nil {
		out.Sessions = []models.Session{}
	}
	if out.Payments == nil {
		out.Payments = []models.Membership{}
	}

	return out, nil
}

// ======================================================
// UPDATE CLIENT
// ======================================================

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()

	client, err := h.clients.GetClient(ctx, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	applyUpdate(client, req)

	if err := h.clients.UpdateClient(ctx, client); err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_in_use", client.Email())
			return
		}
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "client_updated",
		Source:   "admin",
		Entity:   "client",
		EntityID: &client.ID,
		Email:    client.Email(),
	})

	httpresp.OK(c, client)
}

func applyUpdate(c *models.Client, req dto.UpdateClientRequest) {
	str := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	str(&c.OwnerFirstName, req.OwnerFirstName)
	str(&c.OwnerLastName, req.OwnerLastName)
	str(&c.Postcode, req.Postcode)
	str(&c.Address, req.Address)
	str(&c.DogName, req.DogName)

	if req.ContactEmail != nil {
		if email := validators.NormalizeEmail(*req.ContactEmail); email != "" {
			c.ContactEmail = &email
		} else {
			c.ContactEmail = nil
		}
	}
	if req.ContactNumber != nil {
		if phone := strings.TrimSpace(*req.ContactNumber); phone != "" {
			c.ContactNumber = &phone
		} else {
			c.ContactNumber = nil
		}
	}

	if req.IsMember != nil {
		c.IsMember = *req.IsMember
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
}

// ======================================================
// DELETE CLIENT
// ======================================================

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.clients.DeleteClient(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "client_deleted",
		Source:   "admin",
		Entity:   "client",
		EntityID: &id,
	})

	httpresp.OK(c, gin.H{"success": true, "clientId": id})
}

// ======================================================
// MATCH CLIENT
// ======================================================

func (h *ClientHandler) Match(c *gin.Context) {
	criteria := domainClient.Criteria{
		Email:   c.Query("email"),
		Phone:   c.Query("phone"),
		Name:    c.Query("name"),
		DogName: c.Query("dogName"),
	}

	m, err := h.matcher.MatchDetailed(c.Request.Context(), criteria)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if m == nil {
		httperr.Respond(c, domainClient.ErrClientNotFound)
		return
	}

	httpresp.OK(c, gin.H{"client": m.Client, "matchedBy": m.MatchedBy})
}
