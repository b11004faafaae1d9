package queries

import (
	"context"
	"encoding/csv"
	"io"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FeedChunkSize bounds how many variants are held in memory while the feed is
// written.
const FeedChunkSize = 1000

// CatalogFeedWriter streams the Meta catalogue CSV for every variant of a
// published product, ordered by product id and variant id.
type CatalogFeedWriter struct {
	db        *gorm.DB
	builder   services.FeedBuilder
	chunkSize int
}

func NewCatalogFeedWriter(db *gorm.DB, builder services.FeedBuilder) *CatalogFeedWriter {
	return &CatalogFeedWriter{db: db, builder: builder, chunkSize: FeedChunkSize}
}

type feedVariantRow struct {
	ProductID          uuid.UUID
	VariantID          uuid.UUID
	ProductSlug        string
	ProductTitle       string
	ProductDescription string
	ProductThumbnail   string
	SKU                string `gorm:"column:sku"`
	PriceCents         int64
	CompareAtCents     *int64 `gorm:"column:compare_at_cents"`
	StockQuantity      int
	Image              string
	Attributes         datatypes.JSONType[map[string]string]
}

func (f *CatalogFeedWriter) WriteFeed(ctx context.Context, w io.Writer) (int, error) {
	out := csv.NewWriter(w)
	if err := out.Write(services.FeedHeaders); err != nil {
		return 0, err
	}

	rows := 0
	var afterProduct, afterVariant *uuid.UUID
	for {
		chunk, err := f.chunk(ctx, afterProduct, afterVariant)
		if err != nil {
			return rows, err
		}
		if len(chunk) == 0 {
			break
		}

		productIDs := make([]uuid.UUID, 0, len(chunk))
		seen := map[uuid.UUID]bool{}
		for _, r := range chunk {
			if !seen[r.ProductID] {
				seen[r.ProductID] = true
				productIDs = append(productIDs, r.ProductID)
			}
		}
		firstCategory, err := f.firstCategories(ctx, productIDs)
		if err != nil {
			return rows, err
		}
		productGallery, variantGallery, err := f.galleries(ctx, productIDs)
		if err != nil {
			return rows, err
		}

		for _, r := range chunk {
			row := f.builder.Row(services.FeedVariant{
				ProductID:          r.ProductID.String(),
				ProductSlug:        r.ProductSlug,
				ProductTitle:       r.ProductTitle,
				ProductDescription: r.ProductDescription,
				ProductThumbnail:   r.ProductThumbnail,
				FirstCategory:      firstCategory[r.ProductID],
				ProductGallery:     productGallery[r.ProductID],
				SKU:                r.SKU,
				PriceCents:         r.PriceCents,
				CompareAtCents:     r.CompareAtCents,
				StockQuantity:      r.StockQuantity,
				Image:              r.Image,
				Attributes:         r.Attributes.Data(),
				VariantGallery:     variantGallery[r.VariantID],
			})
			if err = out.Write(row); err != nil {
				return rows, err
			}
			rows++
		}
		out.Flush()
		if err = out.Error(); err != nil {
			return rows, err
		}

		last := chunk[len(chunk)-1]
		afterProduct, afterVariant = &last.ProductID, &last.VariantID
		if len(chunk) < f.chunkSize {
			break
		}
	}

	out.Flush()
	return rows, out.Error()
}

func (f *CatalogFeedWriter) chunk(ctx context.Context, afterProduct, afterVariant *uuid.UUID) ([]feedVariantRow, error) {
	q := f.db.WithContext(ctx).
		Table("product_variants v").
		Select(`p.id AS product_id, v.id AS variant_id, p.slug AS product_slug, p.title AS product_title,
			p.description AS product_description, p.thumbnail AS product_thumbnail, v.sku,
			v.price_cents, v.compare_at_price_cents AS compare_at_cents, v.stock_quantity, v.image, v.attributes`).
		Joins("JOIN products p ON p.id = v.product_id").
		Where("p.status = ?", catalog.ProductStatusPublished.String())
	if afterProduct != nil {
		q = q.Where("(p.id, v.id) > (?, ?)", *afterProduct, *afterVariant)
	}

	var rows []feedVariantRow
	err := q.Order("p.id, v.id").Limit(f.chunkSize).Scan(&rows).Error
	return rows, err
}

// firstCategories returns the alphabetically first category title per product.
func (f *CatalogFeedWriter) firstCategories(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	var rows []struct {
		ProductID uuid.UUID
		Title     string
	}
	err := f.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (pc.product_id) pc.product_id, c.title
		FROM product_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.product_id IN ?
		ORDER BY pc.product_id, c.title
	`, productIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]string, len(rows))
	for _, r := range rows {
		out[r.ProductID] = r.Title
	}
	return out, nil
}

func (f *CatalogFeedWriter) galleries(
	ctx context.Context,
	productIDs []uuid.UUID,
) (map[uuid.UUID][]string, map[uuid.UUID][]string, error) {
	var rows []struct {
		ProductID uuid.UUID
		VariantID *uuid.UUID
		Image     string
	}
	err := f.db.WithContext(ctx).Raw(`
		SELECT product_id, variant_id, image
		FROM product_gallery_images
		WHERE product_id IN ?
		ORDER BY position, id
	`, productIDs).Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}
	byProduct := map[uuid.UUID][]string{}
	byVariant := map[uuid.UUID][]string{}
	for _, r := range rows {
		if r.VariantID == nil {
			byProduct[r.ProductID] = append(byProduct[r.ProductID], r.Image)
			continue
		}
		byVariant[*r.VariantID] = append(byVariant[*r.VariantID], r.Image)
	}
	return byProduct, byVariant, nil
}
