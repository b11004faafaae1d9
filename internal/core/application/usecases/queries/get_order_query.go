package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order by id. The id is unguessable and doubles as the
// thank-you page token.
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

type CountryView struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type OrderAddressView struct {
	ID           string      `json:"id"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	AddressLine1 string      `json:"address_line_1"`
	AddressLine2 string      `json:"address_line_2"`
	City         string      `json:"city"`
	State        string      `json:"state"`
	PostalCode   string      `json:"postal_code"`
	Country      CountryView `json:"country"`
}

type OrderItemView struct {
	ID          string            `json:"id"`
	ProductSKU  string            `json:"product_sku"`
	ProductName string            `json:"product_name"`
	Attributes  map[string]string `json:"attributes"`
	Quantity    int               `json:"quantity"`
	UnitPrice   string            `json:"unit_price"`
	TotalPrice  string            `json:"total_price"`
	// Variant is nil once the variant no longer exists.
	Variant *VariantView `json:"variant"`
}

type OrderView struct {
	ID              string           `json:"id"`
	OrderNumber     string           `json:"order_number"`
	Status          string           `json:"status"`
	StatusDisplay   string           `json:"status_display"`
	Email           string           `json:"email"`
	TotalAmount     string           `json:"total_amount"`
	CreatedAt       time.Time        `json:"created_at"`
	ShippingAddress OrderAddressView `json:"shipping_address"`
	BillingAddress  OrderAddressView `json:"billing_address"`
	Items           []OrderItemView  `json:"items"`
	IsPaid          bool             `json:"is_paid"`
}
