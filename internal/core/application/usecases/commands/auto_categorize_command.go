package commands

import (
	"errors"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrAutoCategorizeCommandIsNotConstructed = errors.New(
	"AutoCategorizeCommand must be created via NewAutoCategorizeCommand constructor",
)

type AutoCategorizeCommand struct { //nolint:recvcheck //using for validation
	batchSize  int
	maxWorkers int
	limit      int
	guard      guard.ConstructorGuard
}

// NewAutoCategorizeCommand asks the suggester about batchSize products per call
// with up to maxWorkers calls in flight. limit <= 0 processes every product.
func NewAutoCategorizeCommand(batchSize, maxWorkers, limit int) (AutoCategorizeCommand, error) {
	var batchErr, workersErr error
	if batchSize < 1 || batchSize > 200 {
		batchErr = errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, 200)
	}
	if maxWorkers < 1 || maxWorkers > 32 {
		workersErr = errs.NewValueIsOutOfRangeError("max workers", maxWorkers, 1, 32)
	}
	if err := errors.Join(batchErr, workersErr); err != nil {
		return AutoCategorizeCommand{}, err
	}
	return AutoCategorizeCommand{
		batchSize:  batchSize,
		maxWorkers: maxWorkers,
		limit:      max(limit, 0),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AutoCategorizeCommand) Validate() error {
	return c.guard.Validate(ErrAutoCategorizeCommandIsNotConstructed)
}
