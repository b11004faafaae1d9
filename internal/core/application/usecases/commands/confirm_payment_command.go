package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand applies a verified payment provider event.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	event ports.PaymentEvent
	guard guard.ConstructorGuard
}

func NewConfirmPaymentCommand(event ports.PaymentEvent) (ConfirmPaymentCommand, error) {
	if strings.TrimSpace(event.Type) == "" {
		return ConfirmPaymentCommand{}, errs.NewValueIsRequiredError("event type")
	}
	return ConfirmPaymentCommand{event: event, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) Event() ports.PaymentEvent { return c.event }
