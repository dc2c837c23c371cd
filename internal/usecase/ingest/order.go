package ingest

import (
	"context"
	"strings"
)

type BillingAddress struct {
	Line1    string
	Line2    string
	City     string
	Postcode string
	Country  string
}

func (a *BillingAddress) street() string {
	if a == nil {
		return ""
	}
	var parts []string
	for _, p := range []string{a.Line1, a.Line2, a.City} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

type OrderInput struct {
	CustomerEmail     string
	CustomerFirstName string
	CustomerLastName  string
	OrderNumber       string
	OrderDate         string
	TotalAmount       *float64
	IsMembershipOrder bool
	BillingAddress    *BillingAddress
}

type OrderResult struct {
	Processed   bool           `json:"processed"`
	OrderNumber string         `json:"orderNumber"`
	Payment     *PaymentResult `json:"payment,omitempty"`
}

// RecordOrder handles e-commerce orders. Only membership orders reach the
// payment path; everything else is acknowledged untouched.
type RecordOrder struct {
	payment *RecordPayment
}

func NewRecordOrder(payment *RecordPayment) *RecordOrder {
	return &RecordOrder{payment: payment}
}

func (uc *RecordOrder) Execute(ctx context.Context, in OrderInput) (*OrderResult, error) {
	if !in.IsMembershipOrder {
		return &OrderResult{Processed: false, OrderNumber: in.OrderNumber}, nil
	}

	var postcode, country string
	if in.BillingAddress != nil {
		postcode = in.BillingAddress.Postcode
		country = in.BillingAddress.Country
	}

	res, err := uc.payment.Execute(ctx, PaymentInput{
		Email:     in.CustomerEmail,
		FirstName: in.CustomerFirstName,
		LastName:  in.CustomerLastName,
		Date:      in.OrderDate,
		Amount:    in.TotalAmount,
		Postcode:  postcode,
		Country:   country,
		Address:   in.BillingAddress.street(),
		Source:    "order",
		Metadata:  map[string]any{"orderNumber": in.OrderNumber},
	})
	if err != nil {
		return nil, err
	}

	return &OrderResult{Processed: true, OrderNumber: in.OrderNumber, Payment: res}, nil
}
