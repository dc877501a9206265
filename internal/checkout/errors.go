package checkout

import (
	"errors"
	"fmt"
)

// ErrEmptyCart is returned when checkout is attempted with no line items.
// No network call is made.
var ErrEmptyCart = errors.New("cart has no items")

// ValidationError reports a missing or invalid required buyer field,
// surfaced inline next to the field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field %q is missing or invalid", e.Field)
}

// SubmissionError reports that the order endpoint rejected the request or
// was unreachable. Detail carries the backend's error text verbatim. The
// cart is preserved so the user can retry.
type SubmissionError struct {
	Detail string
}

func (e *SubmissionError) Error() string {
	return "order submission failed: " + e.Detail
}

// PaymentVerificationError reports that a payment the gateway called
// successful could not be confirmed server-side. PaymentRef is surfaced so
// the user can contact support; money may have moved without a confirmed
// order, so this must never be swallowed.
type PaymentVerificationError struct {
	PaymentRef string
	Reason     string
}

func (e *PaymentVerificationError) Error() string {
	return fmt.Sprintf("payment %s could not be verified: %s", e.PaymentRef, e.Reason)
}
