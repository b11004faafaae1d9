package queries

import (
	"context"
	"encoding/json"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db   *gorm.DB
	urls services.URLBuilder
}

func NewGetOrderQueryHandler(db *gorm.DB, urls services.URLBuilder) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, urls: urls}
}

type addressRow struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	AddressLine1 string `gorm:"column:address_line1"`
	AddressLine2 string `gorm:"column:address_line2"`
	City         string
	State        string
	PostalCode   string
	Country      string
}

func (a addressRow) view() OrderAddressView {
	name, _ := kernel.CountryName(a.Country)
	return OrderAddressView{
		ID:           a.ID.String(),
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Email:        a.Email,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      CountryView{Code: a.Country, Name: name},
	}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	db := h.db.WithContext(ctx)
	var orders []struct {
		ID                uuid.UUID
		OrderNumber       string
		Status            string
		Email             string
		TotalAmountCents  int64
		IsPaid            bool
		CreatedAt         time.Time
		ShippingAddressID uuid.UUID
		BillingAddressID  uuid.UUID
	}
	err := db.Raw(`
		SELECT id, order_number, status, email, total_amount_cents, is_paid, created_at,
			shipping_address_id, billing_address_id
		FROM orders
		WHERE id = ?
	`, query.orderID.String()).Scan(&orders).Error
	if err != nil {
		return OrderView{}, err
	}
	if len(orders) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.orderID)
	}
	o := orders[0]

	var addresses []addressRow
	err = db.Raw(`SELECT * FROM order_addresses WHERE id IN ?`,
		[]uuid.UUID{o.ShippingAddressID, o.BillingAddressID}).Scan(&addresses).Error
	if err != nil {
		return OrderView{}, err
	}
	byID := make(map[uuid.UUID]addressRow, len(addresses))
	for _, a := range addresses {
		byID[a.ID] = a
	}

	view := OrderView{
		ID:              o.ID.String(),
		OrderNumber:     o.OrderNumber,
		Status:          o.Status,
		StatusDisplay:   statusDisplay(o.Status),
		Email:           o.Email,
		TotalAmount:     formatCents(o.TotalAmountCents),
		CreatedAt:       o.CreatedAt,
		ShippingAddress: byID[o.ShippingAddressID].view(),
		BillingAddress:  byID[o.BillingAddressID].view(),
		IsPaid:          o.IsPaid,
	}
	if view.Items, err = h.items(ctx, o.ID); err != nil {
		return OrderView{}, err
	}
	return view, nil
}

func (h GetOrderQueryHandler) items(ctx context.Context, orderID uuid.UUID) ([]OrderItemView, error) {
	var rows []struct {
		ID              uuid.UUID
		ProductSKU      string `gorm:"column:product_sku"`
		ProductName     string
		Attributes      datatypes.JSONType[map[string]string]
		Quantity        int
		UnitPriceCents  int64
		TotalPriceCents int64
		VariantID       *uuid.UUID
		VariantSKU      *string
		PriceCents      *int64
		CompareAtCents  *int64
		StockQuantity   *int
		Image           *string
		VariantAttrs    datatypes.JSON
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT oi.id, oi.product_sku, oi.product_name, oi.attributes, oi.quantity,
			oi.unit_price_cents, oi.total_price_cents,
			v.id AS variant_id, v.sku AS variant_sku, v.price_cents, v.compare_at_price_cents AS compare_at_cents,
			v.stock_quantity, v.image, v.attributes AS variant_attrs
		FROM order_items oi
		LEFT JOIN product_variants v ON v.id = oi.product_variant_id
		WHERE oi.order_id = ?
		ORDER BY oi.position
	`, orderID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]OrderItemView, 0, len(rows))
	for _, row := range rows {
		item := OrderItemView{
			ID:          row.ID.String(),
			ProductSKU:  row.ProductSKU,
			ProductName: row.ProductName,
			Attributes:  row.Attributes.Data(),
			Quantity:    row.Quantity,
			UnitPrice:   formatCents(row.UnitPriceCents),
			TotalPrice:  formatCents(row.TotalPriceCents),
		}
		if item.Attributes == nil {
			item.Attributes = map[string]string{}
		}
		if row.VariantID != nil && row.VariantSKU != nil && row.PriceCents != nil {
			variant := variantRow{
				ID:                  *row.VariantID,
				SKU:                 *row.VariantSKU,
				PriceCents:          *row.PriceCents,
				CompareAtPriceCents: row.CompareAtCents,
			}
			var attrs map[string]string
			if err = json.Unmarshal(row.VariantAttrs, &attrs); err != nil {
				return nil, err
			}
			variant.Attributes = datatypes.NewJSONType(attrs)
			if row.StockQuantity != nil {
				variant.StockQuantity = *row.StockQuantity
			}
			if row.Image != nil {
				variant.Image = *row.Image
			}
			v := variant.view(h.urls)
			item.Variant = &v
		}
		out = append(out, item)
	}
	return out, nil
}

func statusDisplay(s string) string {
	status, err := order.ParseStatus(s)
	if err != nil {
		return s
	}
	return status.Label()
}
