package cart

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status is the lifecycle state of a cart.
//
//	Active ──> Completed
//	   │
//	   └─────> Abandoned
type Status int

const (
	StatusUnknown Status = iota
	StatusActive
	StatusAbandoned
	StatusCompleted
)

func getStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown has no persisted form
	return map[Status]string{
		StatusActive:    "ACTIVE",
		StatusAbandoned: "ABANDONED",
		StatusCompleted: "COMPLETED",
	}
}

func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("cart status", fmt.Errorf("%q is not a cart status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("cart status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
