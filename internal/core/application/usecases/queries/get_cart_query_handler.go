package queries

import (
	"context"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GetCartQueryHandler struct {
	db   *gorm.DB
	urls services.URLBuilder
}

func NewGetCartQueryHandler(db *gorm.DB, urls services.URLBuilder) GetCartQueryHandler {
	return GetCartQueryHandler{db: db, urls: urls}
}

func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (CartView, error) {
	if err := query.Validate(); err != nil {
		return CartView{}, err
	}

	db := h.db.WithContext(ctx)
	var carts []struct {
		ID     uuid.UUID
		Status string
	}
	err := db.Raw(`SELECT id, status FROM carts WHERE session_key = ? AND status = ?`,
		query.sessionKey, cart.StatusActive.String()).Scan(&carts).Error
	if err != nil {
		return CartView{}, err
	}
	if len(carts) == 0 {
		return CartView{}, errs.NewObjectNotFoundError("cart", query.sessionKey)
	}

	var rows []struct {
		ItemID       uuid.UUID
		Quantity     int
		ProductTitle string
		ProductSlug  string
		VariantID    uuid.UUID
		SKU          string `gorm:"column:sku"`
		PriceCents   int64
		CompareAt    *int64 `gorm:"column:compare_at_price_cents"`
		Stock        int    `gorm:"column:stock_quantity"`
		Image        string
		Attributes   datatypes.JSONType[map[string]string]
	}
	err = db.Raw(`
		SELECT ci.id AS item_id, ci.quantity, p.title AS product_title, p.slug AS product_slug,
			v.id AS variant_id, v.sku, v.price_cents, v.compare_at_price_cents, v.stock_quantity, v.image, v.attributes
		FROM cart_items ci
		JOIN product_variants v ON v.id = ci.product_variant_id
		JOIN products p ON p.id = v.product_id
		WHERE ci.cart_id = ?
		ORDER BY ci.created_at, ci.id
	`, carts[0].ID).Scan(&rows).Error
	if err != nil {
		return CartView{}, err
	}

	view := CartView{ID: carts[0].ID.String(), Status: carts[0].Status, Items: make([]CartItemView, 0, len(rows))}
	var total int64
	for _, row := range rows {
		variant := variantRow{
			ID:                  row.VariantID,
			SKU:                 row.SKU,
			PriceCents:          row.PriceCents,
			CompareAtPriceCents: row.CompareAt,
			StockQuantity:       row.Stock,
			Image:               row.Image,
			Attributes:          row.Attributes,
		}
		line := row.PriceCents * int64(row.Quantity)
		total += line
		view.TotalItems += row.Quantity
		view.Items = append(view.Items, CartItemView{
			ID:         row.ItemID.String(),
			Quantity:   row.Quantity,
			TotalPrice: formatCents(line),
			Variant: CartVariantView{
				VariantView:  variant.view(h.urls),
				ProductTitle: row.ProductTitle,
				ProductSlug:  row.ProductSlug,
			},
		})
	}
	view.TotalPrice = formatCents(total)
	return view, nil
}
