package commands

import (
	"errors"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrRelayConversionsCommandIsNotConstructed = errors.New(
	"RelayConversionsCommand must be created via NewRelayConversionsCommand constructor",
)

// RelayConversionsCommand delivers one batch of PENDING outbox events.
type RelayConversionsCommand struct { //nolint:recvcheck //using for validation
	batchSize   int
	maxAttempts int
	guard       guard.ConstructorGuard
}

func NewRelayConversionsCommand(batchSize, maxAttempts int) (RelayConversionsCommand, error) {
	var batchErr, attemptsErr error
	if batchSize < 1 || batchSize > 1000 {
		batchErr = errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, 1000)
	}
	if maxAttempts < 1 {
		attemptsErr = errs.NewValueIsOutOfRangeError("max attempts", maxAttempts, 1, "unbounded")
	}
	if err := errors.Join(batchErr, attemptsErr); err != nil {
		return RelayConversionsCommand{}, err
	}
	return RelayConversionsCommand{
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RelayConversionsCommand) Validate() error {
	return c.guard.Validate(ErrRelayConversionsCommandIsNotConstructed)
}

func (c RelayConversionsCommand) BatchSize() int   { return c.batchSize }
func (c RelayConversionsCommand) MaxAttempts() int { return c.maxAttempts }
