// Package cartrepo persists session carts and their lines.
package cartrepo

import (
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CartDTO is a cart row. At most one ACTIVE cart exists per session key.
type CartDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionKey string    `gorm:"size:64;not null;index;uniqueIndex:idx_carts_active_session,where:status = 'ACTIVE'"`
	Status     string    `gorm:"size:20;not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time `gorm:"autoUpdateTime:false;index"`
}

func (CartDTO) TableName() string { return "carts" }

type CartItemDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_variant,priority:1"`
	ProductVariantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_variant,priority:2"`
	Quantity         int       `gorm:"not null"`
	CreatedAt        time.Time
}

func (CartItemDTO) TableName() string { return "cart_items" }

// itemRow is a cart line joined with its variant and product.
type itemRow struct {
	ID            uuid.UUID
	Quantity      int
	VariantID     uuid.UUID
	SKU           string `gorm:"column:sku"`
	PriceCents    int64
	Currency      string
	StockQuantity int
	Image         string
	Attributes    datatypes.JSONType[map[string]string]
	ProductTitle  string
}

func fromDomain(c *cart.Cart) CartDTO {
	return CartDTO{
		ID:         c.ID().Bytes(),
		SessionKey: c.SessionKey(),
		Status:     c.Status().String(),
		UpdatedAt:  c.UpdatedAt(),
	}
}

func itemsFromDomain(c *cart.Cart) []CartItemDTO {
	items := c.Items()
	dtos := make([]CartItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, CartItemDTO{
			ID:               item.ID().Bytes(),
			CartID:           c.ID().Bytes(),
			ProductVariantID: item.Variant().ID.Bytes(),
			Quantity:         item.Quantity(),
		})
	}
	return dtos
}

func itemToDomain(row itemRow) (*cart.Item, error) {
	id, err := kernel.UUIDFromGoogle(row.ID)
	if err != nil {
		return nil, err
	}
	variantID, err := kernel.UUIDFromGoogle(row.VariantID)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(row.PriceCents, row.Currency)
	if err != nil {
		return nil, err
	}
	return cart.RestoreItem(id, cart.VariantSnapshot{
		ID:           variantID,
		SKU:          row.SKU,
		ProductTitle: row.ProductTitle,
		Price:        price,
		Stock:        row.StockQuantity,
		Image:        row.Image,
		Attributes:   row.Attributes.Data(),
	}, row.Quantity)
}

func toDomain(dto CartDTO, rows []itemRow) (*cart.Cart, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	status, err := cart.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	items := make([]*cart.Item, 0, len(rows))
	for _, row := range rows {
		item, itemErr := itemToDomain(row)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}
	return cart.RestoreCart(id, dto.SessionKey, status, items, dto.UpdatedAt)
}
