package dto

// Webhook bodies. Required-ness is checked again in the use cases so the
// rules hold for every caller, not just HTTP.

type PaymentWebhookRequest struct {
	Email    string  `json:"email" binding:"required"`
	Date     string  `json:"date" binding:"required,paymentdate"`
	Amount   *Amount `json:"amount" binding:"required"`
	PostCode string  `json:"postCode"`
	Country  string  `json:"country"`
}

type BillingAddressRequest struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
}

type OrderWebhookRequest struct {
	CustomerEmail     string                 `json:"customerEmail" binding:"required"`
	CustomerFirstName string                 `json:"customerFirstName"`
	CustomerLastName  string                 `json:"customerLastName"`
	OrderNumber       string                 `json:"orderNumber" binding:"required"`
	OrderDate         string                 `json:"orderDate" binding:"required,paymentdate"`
	TotalAmount       *Amount                `json:"totalAmount" binding:"required"`
	IsMembershipOrder bool                   `json:"isMembershipOrder"`
	BillingAddress    *BillingAddressRequest `json:"billingAddress"`
}

type MembershipWebhookRequest struct {
	ClientEmail      string  `json:"clientEmail" binding:"required"`
	ClientName       string  `json:"clientName" binding:"required"`
	Amount           *Amount `json:"amount"`
	MembershipStatus string  `json:"membershipStatus" binding:"required,oneof=renewed cancelled"`
	PaymentDate      string  `json:"paymentDate" binding:"omitempty,paymentdate"`
}

type NewClientWebhookRequest struct {
	ClientEmail string  `json:"clientEmail" binding:"required"`
	ClientName  string  `json:"clientName" binding:"required"`
	Amount      *Amount `json:"amount" binding:"required"`
	PaymentDate string  `json:"paymentDate" binding:"omitempty,paymentdate"`
}

type CancelWebhookRequest struct {
	ClientEmail string `json:"clientEmail" binding:"required"`
}
