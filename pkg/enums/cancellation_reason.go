package enums

import "fmt"

// CancellationReason classifies why an order was cancelled.
type CancellationReason string

const (
	CancellationReasonCustomerRequest     CancellationReason = "customer_request"
	CancellationReasonStoreUnavailable    CancellationReason = "store_unavailable"
	CancellationReasonDeliveryUnavailable CancellationReason = "delivery_unavailable"
	CancellationReasonPaymentFailed       CancellationReason = "payment_failed"
	CancellationReasonOther               CancellationReason = "other"
)

var validCancellationReasons = []CancellationReason{
	CancellationReasonCustomerRequest,
	CancellationReasonStoreUnavailable,
	CancellationReasonDeliveryUnavailable,
	CancellationReasonPaymentFailed,
	CancellationReasonOther,
}

// String implements fmt.Stringer.
func (c CancellationReason) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CancellationReason.
func (c CancellationReason) IsValid() bool {
	for _, candidate := range validCancellationReasons {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCancellationReason converts raw input into a CancellationReason.
func ParseCancellationReason(value string) (CancellationReason, error) {
	for _, candidate := range validCancellationReasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cancellation reason %q", value)
}
