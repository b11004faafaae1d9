package order

import (
	"errors"
	"fmt"
	"slices"

	"storefront/internal/pkg/errs"
)

// ErrInvalidTransition is wrapped when a status change is not allowed.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the fulfilment state of an order.
//
// State transitions:
//
//	Pending ──> Paid ──┬──> Processing ──┬──> Shipped ──> Delivered
//	   │          │    │                 │       │            │
//	   │          │    └─────────────────┼───────┘            │
//	   │          └──> Refunded <────────┴───────┴────────────┘
//	   └─────────────> Cancelled <── (Paid, Processing)
//
// Cancelled and Refunded are final.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status: the order exists but payment has not been
	// confirmed.
	Pending

	// Paid is set when the payment provider confirms the checkout session.
	Paid

	// Processing means the order is being prepared.
	Processing

	// Shipped means the parcel has left the warehouse.
	Shipped

	// Delivered means the parcel reached the customer.
	Delivered

	// Cancelled is final.
	Cancelled

	// Refunded is final.
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		Paid:       "PAID",
		Processing: "PROCESSING",
		Shipped:    "SHIPPED",
		Delivered:  "DELIVERED",
		Cancelled:  "CANCELLED",
		Refunded:   "REFUNDED",
	}
}

func getStatusLabels() map[Status]string {
	return map[Status]string{
		Pending:    "Pending",
		Paid:       "Paid",
		Processing: "Processing",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
		Refunded:   "Refunded",
	}
}

// getTransitions returns the statuses reachable from each status.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // final and unknown statuses have no outgoing transitions
	return map[Status][]Status{
		Pending:    {Paid, Cancelled},
		Paid:       {Processing, Shipped, Cancelled, Refunded},
		Processing: {Shipped, Cancelled, Refunded},
		Shipped:    {Delivered, Refunded},
		Delivered:  {Refunded},
	}
}

// ParseStatus converts the persisted/API form ("PAID") into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not an order status", s))
}

// AllStatuses lists valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Paid, Processing, Shipped, Delivered, Cancelled, Refunded}
}

// Validate checks if the Status value is valid. Unknown (0) and out of range
// values are invalid.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status, e.g. "PAID".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Label returns the display name, e.g. "Paid".
func (s Status) Label() string {
	if label, ok := getStatusLabels()[s]; ok {
		return label
	}
	return "Unknown"
}

// IsFinal reports whether no further transitions exist.
func (s Status) IsFinal() bool {
	return len(getTransitions()[s]) == 0
}

// CanTransitionTo reports whether target is reachable from s in one step.
func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(getTransitions()[s], target)
}

// TransitionTo returns target when the transition is allowed.
//
// Example:
//
//	next, err := order.Paid.TransitionTo(order.Shipped)
//	if err != nil {
//	    // errors.Is(err, order.ErrInvalidTransition)
//	}
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, s, target)
	}
	return target, nil
}
