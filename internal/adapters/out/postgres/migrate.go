package postgres

import (
	"fmt"

	"storefront/internal/adapters/out/postgres/cartrepo"
	"storefront/internal/adapters/out/postgres/catalogrepo"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/trackingrepo"

	"gorm.io/gorm"
)

// Models lists every table model in creation order.
func Models() []any {
	var models []any
	models = append(models, catalogrepo.Models()...)
	models = append(models, cartrepo.Models()...)
	models = append(models, orderrepo.Models()...)
	models = append(models, trackingrepo.Models()...)
	return models
}

// Tables lists every table name, for TRUNCATE in tests and tooling.
func Tables() []string {
	return []string{
		"attributes", "product_types", "product_type_attributes",
		"categories", "collections", "products", "collection_products",
		"product_categories", "product_variants", "product_gallery_images",
		"carts", "cart_items",
		"order_addresses", "orders", "order_items",
		"conversion_events",
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
