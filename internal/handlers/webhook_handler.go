package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/dto"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/httperr"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/httpresp"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/metrics"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/usecase/ingest"
)

// ======================================================
// HANDLER
// ======================================================

type WebhookHandler struct {
	payment   *ingest.RecordPayment
	order     *ingest.RecordOrder
	status    *ingest.ApplyMembershipStatus
	newClient *ingest.CreateMemberClient
	cancel    *ingest.CancelMembership
}

func NewWebhookHandler(
	payment *ingest.RecordPayment,
	order *ingest.RecordOrder,
	status *ingest.ApplyMembershipStatus,
	newClient *ingest.CreateMemberClient,
	cancel *ingest.CancelMembership,
) *WebhookHandler {
	return &WebhookHandler{
		payment:   payment,
		order:     order,
		status:    status,
		newClient: newClient,
		cancel:    cancel,
	}
}

type webhookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func ok(c *gin.Context, source, result, message string, data any) {
	metrics.WebhookEvents.WithLabelValues(source, result).Inc()
	httpresp.OK(c, webhookResponse{Success: true, Message: message, Data: data})
}

func fail(c *gin.Context, source string, err error) {
	result := "failed"
	if _, isBusiness := httperr.AsBusiness(err); isBusiness {
		result = "rejected"
	}
	metrics.WebhookEvents.WithLabelValues(source, result).Inc()
	slog.Info("webhook not applied", "source", source, "result", result, "error", err)
	httperr.Respond(c, err)
}

func bindWebhook(c *gin.Context, source string, req any) bool {
	if !bindJSON(c, req) {
		metrics.WebhookEvents.WithLabelValues(source, "rejected").Inc()
		return false
	}
	return true
}

// ======================================================
// PAYMENT
// ======================================================

func (h *WebhookHandler) Payment(c *gin.Context) {
	const source = "payment"

	var req dto.PaymentWebhookRequest
	if !bindWebhook(c, source, &req) {
		return
	}

	res, err := h.payment.Execute(c.Request.Context(), ingest.PaymentInput{
		Email:    req.Email,
		Date:     req.Date,
		Amount:   req.Amount.Float(),
		Postcode: req.PostCode,
		Country:  req.Country,
		Source:   source,
	})
	if err != nil {
		fail(c, source, err)
		return
	}

	ok(c, source, "ok", "payment recorded", res)
}

// ======================================================
// ORDER (e-commerce)
// ======================================================

func (h *WebhookHandler) Order(c *gin.Context) {
	const source = "order"

	var req dto.OrderWebhookRequest
	if !bindWebhook(c, source, &req) {
		return
	}

	in := ingest.OrderInput{
		CustomerEmail:     req.CustomerEmail,
		CustomerFirstName: req.CustomerFirstName,
		CustomerLastName:  req.CustomerLastName,
		OrderNumber:       req.OrderNumber,
		OrderDate:         req.OrderDate,
		TotalAmount:       req.TotalAmount.Float(),
		IsMembershipOrder: req.IsMembershipOrder,
	}
	if a := req.BillingAddress; a != nil {
		in.BillingAddress = &ingest.BillingAddress{
			Line1:    a.Line1,
			Line2:    a.Line2,
			City:     a.City,
			Postcode: a.Postcode,
			Country:  a.Country,
		}
	}

	res, err := h.order.Execute(c.Request.Context(), in)
	if err != nil {
		fail(c, source, err)
		return
	}

	if !res.Processed {
		ok(c, source, "ignored", "not a membership order", res)
		return
	}
	ok(c, source, "ok", "membership order recorded", res)
}

// ======================================================
// MEMBERSHIP (renewed / cancelled)
// ======================================================

func (h *WebhookHandler) Membership(c *gin.Context) {
	const source = "membership"

	var req dto.MembershipWebhookRequest
	if !bindWebhook(c, source, &req) {
		return
	}

	res, err := h.status.Execute(c.Request.Context(), ingest.MembershipStatusInput{
		ClientEmail:      req.ClientEmail,
		ClientName:       req.ClientName,
		Amount:           req.Amount.Float(),
		MembershipStatus: req.MembershipStatus,
		PaymentDate:      req.PaymentDate,
	})
	if err != nil {
		fail(c, source, err)
		return
	}

	ok(c, source, "ok", "membership "+req.MembershipStatus, res)
}

// ======================================================
// NEW CLIENT
// ======================================================

func (h *WebhookHandler) NewClient(c *gin.Context) {
	const source = "new-client"

	var req dto.NewClientWebhookRequest
	if !bindWebhook(c, source, &req) {
		return
	}

	res, err := h.newClient.Execute(c.Request.Context(), ingest.NewClientInput{
		ClientEmail: req.ClientEmail,
		ClientName:  req.ClientName,
		Amount:      req.Amount.Float(),
		PaymentDate: req.PaymentDate,
	})
	if err != nil {
		fail(c, source, err)
		return
	}

	ok(c, source, "ok", "client created", res)
}

// ======================================================
// CANCEL
// ======================================================

func (h *WebhookHandler) Cancel(c *gin.Context) {
	const source = "cancel"

	var req dto.CancelWebhookRequest
	if !bindWebhook(c, source, &req) {
		return
	}

	res, err := h.cancel.Execute(c.Request.Context(), req.ClientEmail)
	if err != nil {
		fail(c, source, err)
		return
	}

	if res.AlreadyCancelled {
		ok(c, source, "ignored", "membership already cancelled", res)
		return
	}
	ok(c, source, "ok", "membership cancelled", res)
}
