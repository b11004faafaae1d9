package http

import (
	"fmt"
	"net/http"
	"strconv"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type orderStatusRequest struct {
	Status string `json:"status"`
}

// ListOrders handles GET /api/v1/admin/orders - every order, newest first.
func (s *Server) ListOrders(ctx echo.Context) error {
	page, err := pageRequest(ctx)
	if err != nil {
		return err
	}
	filter := queries.OrderFilter{
		Search: ctx.QueryParam("search"),
		Status: ctx.QueryParam("status"),
	}
	if raw := ctx.QueryParam("is_paid"); raw != "" {
		paid, parseErr := strconv.ParseBool(raw)
		if parseErr != nil {
			return errs.NewValueIsInvalidErrorWithCause("is_paid", fmt.Errorf("%q is not a boolean", raw))
		}
		filter.IsPaid = &paid
	}

	query, err := queries.NewListOrdersQuery(filter, page)
	if err != nil {
		return err
	}
	orders, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newPageResponse(ctx, orders))
}

// UpdateOrderStatus handles PATCH /api/v1/admin/orders/:id/status and returns
// the updated order.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return err
	}
	var body orderStatusRequest
	if err = ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, body.Status)
	if err != nil {
		return err
	}
	if err = s.h.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	s.logger.Info("Order status changed", "order_id", orderID.String(), "status", body.Status,
		"admin", ctx.Get(adminSubjectKey))

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return err
	}
	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}
