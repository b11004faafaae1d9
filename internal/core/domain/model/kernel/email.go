package kernel

import (
	"fmt"
	"net/mail"
	"strings"

	"storefront/internal/pkg/errs"
)

// Email is a lower-cased bare address such as "jane@example.com".
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw || addr.Name != "" {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a valid address", raw))
	}
	return Email{value: strings.ToLower(addr.Address)}, nil
}

func (e Email) String() string {
	return e.value
}

func (e Email) IsZero() bool {
	return e.value == ""
}
