package queries

import (
	"errors"
	"strings"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// OrderFilter narrows the admin order list. Empty fields do not filter.
type OrderFilter struct {
	// Search matches order number, email, id, payment intent and the shipping
	// first name, last name and email.
	Search string
	Status string
	IsPaid *bool
}

// ListOrdersQuery lists orders newest first for back-office use.
type ListOrdersQuery struct {
	filter OrderFilter
	page   PageRequest
	guard  guard.ConstructorGuard
}

func NewListOrdersQuery(filter OrderFilter, page PageRequest) (ListOrdersQuery, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Status = strings.ToUpper(strings.TrimSpace(filter.Status))

	var statusErr error
	if filter.Status != "" {
		_, statusErr = order.ParseStatus(filter.Status)
	}
	page, pageErr := page.normalize()
	if err := errors.Join(statusErr, pageErr); err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{filter: filter, page: page, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

type OrderSummary struct {
	ID              string    `json:"id"`
	OrderNumber     string    `json:"order_number"`
	Status          string    `json:"status"`
	StatusDisplay   string    `json:"status_display"`
	Email           string    `json:"email"`
	CustomerName    string    `json:"customer_name"`
	TotalAmount     string    `json:"total_amount"`
	IsPaid          bool      `json:"is_paid"`
	PaymentIntentID string    `json:"stripe_payment_intent_id"`
	CreatedAt       time.Time `json:"created_at"`
}
