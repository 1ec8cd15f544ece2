package types

import "time"

// PaymentDetails is what the gateway or operator reported about a payment.
// The platform only records this; it never initiates a charge.
type PaymentDetails struct {
	TransactionID string     `json:"transactionId,omitempty"`
	Gateway       string     `json:"gateway,omitempty"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	RefundID      string     `json:"refundId,omitempty"`
	RefundedAt    *time.Time `json:"refundedAt,omitempty"`
}

// OrderDiscount is the order-level discount snapshot.
type OrderDiscount struct {
	Amount float64 `json:"amount"`
	Code   string  `json:"code,omitempty"`
	Type   string  `json:"type,omitempty"`
}
