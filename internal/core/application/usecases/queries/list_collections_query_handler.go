package queries

import (
	"context"

	"storefront/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListCollectionsQueryHandler struct {
	db   *gorm.DB
	urls services.URLBuilder
}

func NewListCollectionsQueryHandler(db *gorm.DB, urls services.URLBuilder) ListCollectionsQueryHandler {
	return ListCollectionsQueryHandler{db: db, urls: urls}
}

// Handle lists active collections by title. product_count counts every linked
// product regardless of status.
func (h ListCollectionsQueryHandler) Handle(ctx context.Context, query ListCollectionsQuery) (Page[CollectionView], error) {
	if err := query.Validate(); err != nil {
		return Page[CollectionView]{}, err
	}

	db := h.db.WithContext(ctx)
	page := Page[CollectionView]{Page: query.page.Page, PageSize: query.page.PageSize, Results: []CollectionView{}}
	if err := db.Raw(`SELECT count(*) FROM collections WHERE is_active`).Scan(&page.Count).Error; err != nil {
		return page, err
	}

	var rows []struct {
		ID           uuid.UUID
		Title        string
		Slug         string
		Description  string
		Image        string
		IsActive     bool
		ProductCount int
	}
	err := db.Raw(`
		SELECT c.id, c.title, c.slug, c.description, c.image, c.is_active,
			(SELECT count(*) FROM collection_products cp WHERE cp.collection_id = c.id) AS product_count
		FROM collections c
		WHERE c.is_active
		ORDER BY c.title, c.id
		LIMIT ? OFFSET ?
	`, query.page.PageSize, query.page.offset()).Scan(&rows).Error
	if err != nil {
		return page, err
	}

	for _, row := range rows {
		page.Results = append(page.Results, CollectionView{
			ID:           row.ID.String(),
			Title:        row.Title,
			Slug:         row.Slug,
			Description:  row.Description,
			Image:        h.urls.Media(row.Image),
			IsActive:     row.IsActive,
			ProductCount: row.ProductCount,
		})
	}
	return page, nil
}
