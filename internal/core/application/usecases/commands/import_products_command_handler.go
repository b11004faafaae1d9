package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io/fs"
	"log/slog"
	"mime"
	"path"
	"strings"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// PlaceholderThumbnail is stored for products imported without an image and is
// replaced by the first real image a later import brings.
const PlaceholderThumbnail = "products/placeholder.jpg"

// ImportItemResult is the outcome for one item.
type ImportItemResult struct {
	SKU     string
	Created bool
	Warning string
	Err     error
}

func (r ImportItemResult) String() string {
	switch {
	case r.Err != nil:
		return fmt.Sprintf("Failed to import item %s: %v", r.SKU, r.Err)
	case r.Created:
		return "[Created] " + r.SKU
	default:
		return "[Updated] " + r.SKU
	}
}

type ImportReport struct {
	Results  []ImportItemResult
	Imported int
}

type ImportProductsCommandHandler struct {
	uowFactory CatalogUoWFactory
	blobs      ports.BlobStore
	logger     *slog.Logger
}

func NewImportProductsCommandHandler(
	uowFactory CatalogUoWFactory,
	blobs ports.BlobStore,
	logger *slog.Logger,
) ImportProductsCommandHandler {
	return ImportProductsCommandHandler{
		uowFactory: uowFactory,
		blobs:      blobs,
		logger:     logger.With("component", "ImportProductsCommandHandler"),
	}
}

// Handle imports every item in its own transaction so one bad item does not undo
// the others. Missing prerequisites abort the whole run.
func (h ImportProductsCommandHandler) Handle(ctx context.Context, cmd ImportProductsCommand) (ImportReport, error) {
	if err := cmd.Validate(); err != nil {
		return ImportReport{}, err
	}

	category, productType, err := h.prerequisites(ctx, cmd)
	if err != nil {
		return ImportReport{}, err
	}
	if err = h.ensurePlaceholder(ctx); err != nil {
		return ImportReport{}, err
	}

	report := ImportReport{Results: make([]ImportItemResult, 0, len(cmd.items))}
	for i, item := range cmd.items {
		res := ImportItemResult{SKU: itemLabel(item, i)}
		res.Created, res.Warning, res.Err = h.importItem(ctx, cmd.images, item, category, productType)
		if res.Err == nil {
			report.Imported++
		} else {
			h.logger.Warn("Product import failed", "sku", res.SKU, "error", res.Err)
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}

func (h ImportProductsCommandHandler) prerequisites(
	ctx context.Context,
	cmd ImportProductsCommand,
) (*catalog.Category, *catalog.ProductType, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	category, err := uow.CategoryRepository().FindByTitle(ctx, cmd.categoryTitle)
	if err != nil {
		return nil, nil, fmt.Errorf("category %q does not exist: %w", cmd.categoryTitle, err)
	}
	productType, err := uow.ProductTypeRepository().FindByName(ctx, cmd.productTypeName)
	if err != nil {
		return nil, nil, fmt.Errorf("product type %q does not exist: %w", cmd.productTypeName, err)
	}
	return category, productType, uow.Commit(ctx)
}

// ensurePlaceholder writes a plain grey JPEG under PlaceholderThumbnail once.
func (h ImportProductsCommandHandler) ensurePlaceholder(ctx context.Context) error {
	exists, err := h.blobs.Exists(ctx, PlaceholderThumbnail)
	if err != nil || exists {
		return err
	}
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	grey := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	for y := range 100 {
		for x := range 100 {
			img.Set(x, y, grey)
		}
	}
	var buf bytes.Buffer
	if err = jpeg.Encode(&buf, img, nil); err != nil {
		return err
	}
	return h.blobs.Put(ctx, PlaceholderThumbnail, &buf, "image/jpeg")
}

func (h ImportProductsCommandHandler) importItem(
	ctx context.Context,
	images fs.FS,
	item ImportItem,
	category *catalog.Category,
	productType *catalog.ProductType,
) (created bool, warning string, err error) {
	if strings.TrimSpace(item.SKU) == "" {
		return false, "", errs.NewValueIsRequiredError("sku")
	}
	title := item.DisplayTitle()
	slug := kernel.Slugify(title)
	if slug == "" {
		return false, "", errs.NewValueIsRequiredError("title")
	}

	imageData, imagePath, warning := readImage(images, item.LocalImagePath)

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return false, warning, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	products := uow.ProductRepository()
	product, productCreated, err := h.getOrCreateProduct(ctx, products, productType, title, slug, item.Title)
	if err != nil {
		return false, warning, err
	}
	product.AssignCategories(category.ID())

	var imageKey string
	if imageData != nil {
		imageKey = "products/" + slug + "/" + path.Base(imagePath)
		if err = h.blobs.Put(ctx, imageKey, bytes.NewReader(imageData), contentTypeOf(imagePath)); err != nil {
			return false, warning, err
		}
		if productCreated || product.Thumbnail() == PlaceholderThumbnail || product.Thumbnail() == "" {
			product.SetThumbnail(imageKey)
		}
	}
	if productCreated {
		err = products.Add(ctx, product)
	} else {
		err = products.Update(ctx, product)
	}
	if err != nil {
		return false, warning, err
	}

	created, err = h.upsertVariant(ctx, products, product, productType, item, imageKey)
	if err != nil {
		return false, warning, err
	}
	return created, warning, uow.Commit(ctx)
}

func (h ImportProductsCommandHandler) getOrCreateProduct(
	ctx context.Context,
	products ports.ProductRepository,
	productType *catalog.ProductType,
	title, slug, description string,
) (*catalog.Product, bool, error) {
	existing, err := products.FindBySlug(ctx, slug)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, false, err
	}

	p, err := catalog.NewProduct(kernel.NewUUID(), productType.ID(), title, slug, kernel.MustMoney(0, kernel.DefaultCurrency))
	if err != nil {
		return nil, false, err
	}
	p.Publish()
	p.SetDescription(strings.TrimSpace(description))
	p.SetThumbnail(PlaceholderThumbnail)
	return p, true, nil
}

func (h ImportProductsCommandHandler) upsertVariant(
	ctx context.Context,
	products ports.ProductRepository,
	product *catalog.Product,
	productType *catalog.ProductType,
	item ImportItem,
	imageKey string,
) (bool, error) {
	attributes := variantAttributes(productType, item)
	zero := kernel.MustMoney(0, kernel.DefaultCurrency)

	existing, err := products.FindVariantBySKU(ctx, item.SKU)
	switch {
	case err == nil:
		if err = existing.UpdateAttributes(productType, attributes); err != nil {
			return false, err
		}
		existing.SetPrice(zero)
		if err = existing.SetStock(0); err != nil {
			return false, err
		}
		if imageKey != "" {
			existing.SetImage(imageKey)
		}
		return false, products.UpdateVariant(ctx, existing)
	case !errors.Is(err, errs.ErrObjectNotFound):
		return false, err
	}

	v, err := catalog.NewVariant(kernel.NewUUID(), product, productType, item.SKU, zero, 0, attributes)
	if err != nil {
		return false, err
	}
	if imageKey != "" {
		v.SetImage(imageKey)
	} else {
		v.SetImage(PlaceholderThumbnail)
	}
	return true, products.AddVariant(ctx, v)
}

// variantAttributes fills the type's attributes from the item dimensions and uses
// "null" for everything the item does not provide.
func variantAttributes(productType *catalog.ProductType, item ImportItem) map[string]string {
	dimensions := map[string]Dimension{
		"width":  item.WidthCM,
		"height": item.HeightCM,
		"depth":  item.DepthCM,
	}
	attributes := make(map[string]string)
	for _, a := range productType.AllowedAttributes() {
		if v := dimensions[a.Slug()]; v != "" {
			attributes[a.Slug()] = string(v)
			continue
		}
		attributes[a.Slug()] = "null"
	}
	return attributes
}

// readImage loads the item image. A missing file is a warning, not a failure.
func readImage(images fs.FS, rel string) ([]byte, string, string) {
	rel = strings.TrimPrefix(path.Clean(strings.ReplaceAll(strings.TrimSpace(rel), "\\", "/")), "./")
	if rel == "" || rel == "." {
		return nil, "", ""
	}
	data, err := fs.ReadFile(images, rel)
	if err != nil {
		return nil, "", "Image not found at: " + rel
	}
	return data, rel, ""
}

func contentTypeOf(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
