// Package orderrepo persists orders together with their addresses and item
// snapshots.
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber           string    `gorm:"size:32;uniqueIndex;not null"`
	Status                string    `gorm:"size:20;index;not null"`
	Email                 string    `gorm:"size:254;index;not null"`
	ShippingAddressID     uuid.UUID `gorm:"type:uuid;not null"`
	BillingAddressID      uuid.UUID `gorm:"type:uuid;not null"`
	TotalAmountCents      int64     `gorm:"not null"`
	Currency              string    `gorm:"size:3;not null"`
	IsPaid                bool      `gorm:"not null;default:false;index"`
	StripePaymentIntentID string    `gorm:"size:255;index"`
	CartSessionKey        string    `gorm:"size:64"`
	CreatedAt             time.Time `gorm:"index"`
	UpdatedAt             time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

type AddressDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName    string    `gorm:"size:100;not null"`
	LastName     string    `gorm:"size:100;not null"`
	Email        string    `gorm:"size:254;not null"`
	Phone        string    `gorm:"size:32"`
	AddressLine1 string    `gorm:"size:255;not null"`
	AddressLine2 string    `gorm:"size:255"`
	City         string    `gorm:"size:100;not null"`
	State        string    `gorm:"size:100"`
	PostalCode   string    `gorm:"size:20;not null"`
	Country      string    `gorm:"size:2;not null"`
}

func (AddressDTO) TableName() string {
	return "order_addresses"
}

// OrderItemDTO is an immutable snapshot of a cart line. ProductVariantID is
// cleared when the variant is deleted.
type OrderItemDTO struct {
	ID               uuid.UUID                            `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID                            `gorm:"type:uuid;index;not null"`
	Position         int                                  `gorm:"not null"`
	ProductVariantID *uuid.UUID                           `gorm:"type:uuid;index"`
	ProductSKU       string                               `gorm:"column:product_sku;size:100;not null"`
	ProductName      string                               `gorm:"size:255;not null"`
	Attributes       datatypes.JSONType[map[string]string] `gorm:"type:jsonb"`
	Quantity         int                                  `gorm:"not null"`
	UnitPriceCents   int64                                `gorm:"not null"`
	TotalPriceCents  int64                                `gorm:"not null"`
	Currency         string                               `gorm:"size:3;not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// Models returns the order table models.
func Models() []any {
	return []any{&AddressDTO{}, &OrderDTO{}, &OrderItemDTO{}}
}

// fromDomain converts an order aggregate to its rows.
func fromDomain(o *order.Order) (OrderDTO, AddressDTO, AddressDTO, []OrderItemDTO) {
	dto := OrderDTO{
		ID:                    o.ID().Bytes(),
		OrderNumber:           o.Number().String(),
		Status:                o.Status().String(),
		Email:                 o.Email().String(),
		ShippingAddressID:     o.ShippingAddress().ID().Bytes(),
		BillingAddressID:      o.BillingAddress().ID().Bytes(),
		TotalAmountCents:      o.Total().Cents(),
		Currency:              o.Total().Currency(),
		IsPaid:                o.IsPaid(),
		StripePaymentIntentID: o.PaymentIntentID(),
		CartSessionKey:        o.CartSessionKey(),
		CreatedAt:             o.CreatedAt(),
	}

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		var variantID *uuid.UUID
		if id := item.VariantID(); id != nil {
			raw := id.Bytes()
			variantID = &raw
		}
		items = append(items, OrderItemDTO{
			ID:               item.ID().Bytes(),
			OrderID:          dto.ID,
			Position:         i,
			ProductVariantID: variantID,
			ProductSKU:       item.SKU(),
			ProductName:      item.Name(),
			Attributes:       datatypes.NewJSONType(item.Attributes()),
			Quantity:         item.Quantity(),
			UnitPriceCents:   item.UnitPrice().Cents(),
			TotalPriceCents:  item.TotalPrice().Cents(),
			Currency:         item.UnitPrice().Currency(),
		})
	}

	return dto, addressFromDomain(o.ShippingAddress()), addressFromDomain(o.BillingAddress()), items
}

func addressFromDomain(a order.Address) AddressDTO {
	return AddressDTO{
		ID:           a.ID().Bytes(),
		FirstName:    a.FirstName(),
		LastName:     a.LastName(),
		Email:        a.Email().String(),
		Phone:        a.Phone(),
		AddressLine1: a.AddressLine1(),
		AddressLine2: a.AddressLine2(),
		City:         a.City(),
		State:        a.State(),
		PostalCode:   a.PostalCode(),
		Country:      a.Country().Code(),
	}
}

func addressToDomain(dto AddressDTO) (order.Address, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return order.Address{}, err
	}
	return order.NewAddress(id, order.AddressInput{
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Email:        dto.Email,
		Phone:        dto.Phone,
		AddressLine1: dto.AddressLine1,
		AddressLine2: dto.AddressLine2,
		City:         dto.City,
		State:        dto.State,
		PostalCode:   dto.PostalCode,
		Country:      dto.Country,
	})
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	var variantID *kernel.UUID
	if dto.ProductVariantID != nil {
		vid, vidErr := kernel.UUIDFromGoogle(*dto.ProductVariantID)
		if vidErr != nil {
			return nil, vidErr
		}
		variantID = &vid
	}
	price, err := kernel.NewMoney(dto.UnitPriceCents, dto.Currency)
	if err != nil {
		return nil, err
	}
	return order.RestoreItem(order.ItemState{
		ID:         id,
		VariantID:  variantID,
		SKU:        dto.ProductSKU,
		Name:       dto.ProductName,
		Attributes: dto.Attributes.Data(),
		UnitPrice:  price,
		Quantity:   dto.Quantity,
	})
}

// toDomain reconstructs the aggregate using RestoreOrder.
func toDomain(dto OrderDTO, shipping, billing AddressDTO, itemDTOs []OrderItemDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	number, err := order.ParseNumber(dto.OrderNumber)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	email, err := kernel.NewEmail(dto.Email)
	if err != nil {
		return nil, err
	}
	shippingAddress, err := addressToDomain(shipping)
	if err != nil {
		return nil, err
	}
	billingAddress, err := addressToDomain(billing)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.State{
		ID:              id,
		Number:          number,
		Email:           email,
		Status:          status,
		Shipping:        shippingAddress,
		Billing:         billingAddress,
		Items:           items,
		IsPaid:          dto.IsPaid,
		PaymentIntentID: dto.StripePaymentIntentID,
		CartSessionKey:  dto.CartSessionKey,
		CreatedAt:       dto.CreatedAt,
	})
}
