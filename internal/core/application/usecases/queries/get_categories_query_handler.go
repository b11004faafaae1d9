package queries

import (
	"context"

	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type categoryRow struct {
	ID          uuid.UUID
	ParentID    *uuid.UUID
	Title       string
	Slug        string
	Description string
	Image       string
	SEOMetadata datatypes.JSONMap `gorm:"column:seo_metadata"`
}

type categoryReader struct {
	urls services.URLBuilder
	seo  services.SEOBuilder
}

func (r categoryReader) summary(row categoryRow) CategorySummary {
	s := CategorySummary{
		ID:          row.ID.String(),
		Title:       row.Title,
		Slug:        row.Slug,
		Description: row.Description,
		Image:       r.urls.Media(row.Image),
		SEOMetadata: r.seo.Category(row.Title, row.Description, row.Image, row.Slug, row.SEOMetadata),
	}
	if row.ParentID != nil {
		parent := row.ParentID.String()
		s.Parent = &parent
	}
	return s
}

// GetCategoryTreeQueryHandler builds the tree in memory from a single scan.
type GetCategoryTreeQueryHandler struct {
	db *gorm.DB
	categoryReader
}

func NewGetCategoryTreeQueryHandler(db *gorm.DB, urls services.URLBuilder, seo services.SEOBuilder) GetCategoryTreeQueryHandler {
	return GetCategoryTreeQueryHandler{db: db, categoryReader: categoryReader{urls: urls, seo: seo}}
}

func (h GetCategoryTreeQueryHandler) Handle(ctx context.Context, query GetCategoryTreeQuery) ([]*CategoryTreeNode, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []categoryRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, parent_id, title, slug, description, image, seo_metadata
		FROM categories
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	nodes := make([]services.CategoryNode[categoryRow], 0, len(rows))
	for _, row := range rows {
		n := services.CategoryNode[categoryRow]{ID: row.ID.String(), Title: row.Title, Slug: row.Slug, Payload: row}
		if row.ParentID != nil {
			n.ParentID = row.ParentID.String()
		}
		nodes = append(nodes, n)
	}

	var convert func(ns []*services.CategoryNode[categoryRow]) []*CategoryTreeNode
	convert = func(ns []*services.CategoryNode[categoryRow]) []*CategoryTreeNode {
		out := make([]*CategoryTreeNode, 0, len(ns))
		for _, n := range ns {
			row := n.Payload
			out = append(out, &CategoryTreeNode{
				ID:          row.ID.String(),
				Title:       row.Title,
				Slug:        row.Slug,
				Image:       h.urls.Media(row.Image),
				Children:    convert(n.Children),
				SEOMetadata: h.seo.Category(row.Title, row.Description, row.Image, row.Slug, row.SEOMetadata),
			})
		}
		return out
	}
	return convert(services.BuildCategoryTree(nodes)), nil
}

type GetCategoryQueryHandler struct {
	db *gorm.DB
	categoryReader
}

func NewGetCategoryQueryHandler(db *gorm.DB, urls services.URLBuilder, seo services.SEOBuilder) GetCategoryQueryHandler {
	return GetCategoryQueryHandler{db: db, categoryReader: categoryReader{urls: urls, seo: seo}}
}

func (h GetCategoryQueryHandler) Handle(ctx context.Context, query GetCategoryQuery) (CategoryDetail, error) {
	if err := query.Validate(); err != nil {
		return CategoryDetail{}, err
	}

	db := h.db.WithContext(ctx)
	var rows []categoryRow
	err := db.Raw(`
		SELECT id, parent_id, title, slug, description, image, seo_metadata
		FROM categories
		WHERE slug = ?
	`, query.slug).Scan(&rows).Error
	if err != nil {
		return CategoryDetail{}, err
	}
	if len(rows) == 0 {
		return CategoryDetail{}, errs.NewObjectNotFoundError("category", query.slug)
	}

	var children []categoryRow
	err = db.Raw(`
		SELECT id, parent_id, title, slug, description, image, seo_metadata
		FROM categories
		WHERE parent_id = ?
		ORDER BY lower(title), slug
	`, rows[0].ID).Scan(&children).Error
	if err != nil {
		return CategoryDetail{}, err
	}

	detail := CategoryDetail{
		CategorySummary: h.summary(rows[0]),
		Children:        make([]CategorySummary, 0, len(children)),
	}
	for _, c := range children {
		detail.Children = append(detail.Children, h.summary(c))
	}
	return detail, nil
}
