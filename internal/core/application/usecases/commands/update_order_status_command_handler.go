package commands

import (
	"context"
	"log/slog"
)

type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "UpdateOrderStatusCommandHandler"),
	}
}

// Handle moves the order along its workflow. Invalid transitions surface as
// order.ErrInvalidTransition and nothing is written.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	o, err := orders.GetForUpdate(ctx, cmd.orderID)
	if err != nil {
		return err
	}
	from := o.Status()
	if err = o.ChangeStatus(cmd.status); err != nil {
		return err
	}
	if err = orders.Update(ctx, o); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("Order status changed", "order", o.Number().String(), "from", from.String(), "to", o.Status().String())
	return nil
}
