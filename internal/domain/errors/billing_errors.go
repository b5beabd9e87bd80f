package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrPlanNotFound indicates an unknown plan slug
	ErrPlanNotFound = errors.New("plan not found")

	// ErrSubscriptionNotFound indicates that the specified subscription was not found
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrInvoiceNotFound indicates that the specified invoice was not found
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrPaymentMethodNotFound indicates that the specified payment method was not found
	ErrPaymentMethodNotFound = errors.New("payment method not found")

	// ErrInvoiceNotPayable indicates a payment against a cancelled or refunded invoice
	ErrInvoiceNotPayable = errors.New("invoice is not payable in its current status")

	// ErrSchoolHasSubscription indicates the school already has a current subscription
	ErrSchoolHasSubscription = errors.New("school already has a subscription")

	// ErrInvalidBillingCycle indicates a cycle other than monthly or yearly
	ErrInvalidBillingCycle = errors.New("invalid billing cycle")
)

// InvalidTransitionError is returned when a subscription status change is
// not present in the transition table.
type InvalidTransitionError struct {
	From   string
	Action string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid subscription transition: action %q not allowed from status %q", e.Action, e.From)
}

// NewInvalidTransitionError creates a new InvalidTransitionError
func NewInvalidTransitionError(from, action string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, Action: action}
}
