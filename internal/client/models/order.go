package models

import "strings"

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	SpeciesID string `json:"speciesId" validate:"required"`
	NameOnTag string `json:"nameOnTag" validate:"required,max=100"`
}

// Normalize trims both fields; the tag name is stored as typed otherwise.
func (r CreateOrderRequest) Normalize() CreateOrderRequest {
	return CreateOrderRequest{
		SpeciesID: strings.TrimSpace(r.SpeciesID),
		NameOnTag: strings.TrimSpace(r.NameOnTag),
	}
}

// PaymentStatus values reported by the backend for an order.
const (
	PaymentPending    = "PENDING"
	PaymentPaid       = "PAID"
	PaymentSettlement = "SETTLEMENT"
	PaymentFailed     = "FAILED"
	PaymentExpired    = "EXPIRED"
	PaymentCancelled  = "CANCELLED"
)

type Order struct {
	ID            string `json:"id"`
	OrderID       string `json:"orderId,omitempty"`
	OrderNumber   string `json:"orderNumber,omitempty"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	TotalAmount   Amount `json:"totalAmount,omitempty"`
	SnapToken     string `json:"snapToken,omitempty"`
	ExpiredAt     string `json:"expiredAt,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

// Key returns the identifier used for follow-up calls: id, or orderId when
// the backend only filled that one.
func (o Order) Key() string {
	if o.ID != "" {
		return o.ID
	}
	return o.OrderID
}

// PaymentToken is the hand-off value for the external payment widget.
type PaymentToken struct {
	SnapToken     string `json:"snapToken"`
	TransactionID string `json:"transactionId"`
}
