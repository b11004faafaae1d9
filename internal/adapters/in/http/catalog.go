package http

import (
	"net/http"

	"storefront/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListProducts handles GET /api/v1/products - lists published products.
func (s *Server) ListProducts(ctx echo.Context) error {
	page, err := pageRequest(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewListProductsQuery(queries.ProductFilter{
		CategorySlug:   ctx.QueryParam("categories__slug"),
		CollectionSlug: ctx.QueryParam("collections__slug"),
		Search:         ctx.QueryParam("search"),
		Ordering:       ctx.QueryParam("ordering"),
	}, page)
	if err != nil {
		return err
	}

	products, err := s.h.ListProducts.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newPageResponse(ctx, products))
}

// GetProduct handles GET /api/v1/products/:slug.
func (s *Server) GetProduct(ctx echo.Context) error {
	query, err := queries.NewGetProductQuery(ctx.Param("slug"))
	if err != nil {
		return err
	}
	product, err := s.h.GetProduct.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, product)
}

// GetCategoryTree handles GET /api/v1/products/categories - the nested tree of
// root categories.
func (s *Server) GetCategoryTree(ctx echo.Context) error {
	tree, err := s.h.GetCategoryTree.Handle(ctx.Request().Context(), queries.NewGetCategoryTreeQuery())
	if err != nil {
		return err
	}
	if tree == nil {
		tree = []*queries.CategoryTreeNode{}
	}
	return ctx.JSON(http.StatusOK, tree)
}

// GetCategory handles GET /api/v1/products/categories/:slug.
func (s *Server) GetCategory(ctx echo.Context) error {
	query, err := queries.NewGetCategoryQuery(ctx.Param("slug"))
	if err != nil {
		return err
	}
	category, err := s.h.GetCategory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, category)
}

// ListCollections handles GET /api/v1/products/collections - active collections.
func (s *Server) ListCollections(ctx echo.Context) error {
	page, err := pageRequest(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewListCollectionsQuery(page)
	if err != nil {
		return err
	}
	collections, err := s.h.ListCollections.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newPageResponse(ctx, collections))
}
