package queries

import (
	"context"
	"strings"
	"time"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const categoryDescendantsSQL = `
	p.id IN (
		SELECT pc.product_id FROM product_categories pc
		WHERE pc.category_id IN (
			WITH RECURSIVE tree AS (
				SELECT id FROM categories WHERE slug = ?
				UNION
				SELECT c.id FROM categories c JOIN tree t ON c.parent_id = t.id
			)
			SELECT id FROM tree
		)
	)`

var productOrderClauses = map[string]string{
	"base_price":  "p.base_price_cents ASC, p.id",
	"-base_price": "p.base_price_cents DESC, p.id",
	"created_at":  "p.created_at ASC, p.id",
	"-created_at": "p.created_at DESC, p.id",
}

type ListProductsQueryHandler struct {
	db   *gorm.DB
	urls services.URLBuilder
}

func NewListProductsQueryHandler(db *gorm.DB, urls services.URLBuilder) ListProductsQueryHandler {
	return ListProductsQueryHandler{db: db, urls: urls}
}

func (h ListProductsQueryHandler) Handle(ctx context.Context, query ListProductsQuery) (Page[ProductListItem], error) {
	if err := query.Validate(); err != nil {
		return Page[ProductListItem]{}, err
	}

	page := Page[ProductListItem]{Page: query.page.Page, PageSize: query.page.PageSize, Results: []ProductListItem{}}
	scope := h.filtered(ctx, query.filter)
	if err := scope.Count(&page.Count).Error; err != nil {
		return page, err
	}
	if page.Count == 0 {
		return page, nil
	}

	var rows []struct {
		ID             uuid.UUID
		Title          string
		Slug           string
		Status         string
		Thumbnail      string
		BasePriceCents int64
		CreatedAt      time.Time
	}
	err := h.filtered(ctx, query.filter).
		Select("p.id, p.title, p.slug, p.status, p.thumbnail, p.base_price_cents, p.created_at").
		Order(productOrderClauses[query.filter.Ordering]).
		Limit(query.page.PageSize).
		Offset(query.page.offset()).
		Scan(&rows).Error
	if err != nil {
		return page, err
	}
	if len(rows) == 0 {
		return page, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	names, err := categoryNames(ctx, h.db, ids)
	if err != nil {
		return page, err
	}

	for _, row := range rows {
		categories := names[row.ID]
		if categories == nil {
			categories = []string{}
		}
		page.Results = append(page.Results, ProductListItem{
			ID:            row.ID.String(),
			Title:         row.Title,
			Slug:          row.Slug,
			Status:        row.Status,
			Thumbnail:     h.urls.Media(row.Thumbnail),
			BasePrice:     formatCents(row.BasePriceCents),
			CategoryNames: categories,
			CreatedAt:     row.CreatedAt,
		})
	}
	return page, nil
}

func (h ListProductsQueryHandler) filtered(ctx context.Context, f ProductFilter) *gorm.DB {
	q := h.db.WithContext(ctx).Table("products p").Where("p.status = ?", catalog.ProductStatusPublished.String())
	if f.CategorySlug != "" {
		q = q.Where(categoryDescendantsSQL, f.CategorySlug)
	}
	if f.CollectionSlug != "" {
		q = q.Where(`p.id IN (
			SELECT cp.product_id FROM collection_products cp
			JOIN collections c ON c.id = cp.collection_id
			WHERE c.slug = ?
		)`, f.CollectionSlug)
	}
	for _, term := range strings.Fields(f.Search) {
		pattern := likePattern(term)
		q = q.Where(
			"(p.title ILIKE ? OR p.description ILIKE ? OR coalesce(p.specifications::text, '') ILIKE ?)",
			pattern, pattern, pattern,
		)
	}
	return q
}

// categoryNames maps product ids to their category titles in title order.
func categoryNames(ctx context.Context, db *gorm.DB, productIDs []uuid.UUID) (map[uuid.UUID][]string, error) {
	var rows []struct {
		ProductID uuid.UUID
		Title     string
	}
	err := db.WithContext(ctx).Raw(`
		SELECT pc.product_id, c.title
		FROM product_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.product_id IN ?
		ORDER BY c.title
	`, productIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID][]string, len(productIDs))
	for _, row := range rows {
		out[row.ProductID] = append(out[row.ProductID], row.Title)
	}
	return out, nil
}
