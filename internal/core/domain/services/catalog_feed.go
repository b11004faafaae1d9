package services

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// FeedHeaders are the Meta catalogue CSV columns in order.
var FeedHeaders = []string{
	"id", "title", "description", "availability", "condition", "price", "sale_price",
	"link", "image_link", "brand", "item_group_id", "google_product_category",
	"color", "size", "gender", "age_group", "additional_image_link",
}

const maxAdditionalImages = 10

// FeedVariant is one published variant with the product data the feed needs.
type FeedVariant struct {
	ProductID          string
	ProductSlug        string
	ProductTitle       string
	ProductDescription string
	ProductThumbnail   string
	FirstCategory      string
	ProductGallery     []string
	SKU                string
	PriceCents         int64
	CompareAtCents     *int64
	StockQuantity      int
	Image              string
	Attributes         map[string]string
	VariantGallery     []string
}

// FeedBuilder maps FeedVariants to CSV rows.
type FeedBuilder struct {
	urls     URLBuilder
	brand    string
	currency string
}

func NewFeedBuilder(urls URLBuilder, brand, currency string) FeedBuilder {
	return FeedBuilder{urls: urls, brand: brand, currency: currency}
}

// Row renders v in FeedHeaders order. A compare-at price above the price becomes
// the listed price and the actual price the sale price.
func (b FeedBuilder) Row(v FeedVariant) []string {
	price := v.PriceCents
	salePrice := ""
	if v.CompareAtCents != nil && *v.CompareAtCents > v.PriceCents {
		price = *v.CompareAtCents
		salePrice = b.formatPrice(v.PriceCents)
	}

	availability := "out of stock"
	if v.StockQuantity > 0 {
		availability = "in stock"
	}

	image := v.Image
	if image == "" {
		image = v.ProductThumbnail
	}

	gallery := v.VariantGallery
	if len(gallery) == 0 {
		gallery = v.ProductGallery
	}
	if len(gallery) > maxAdditionalImages {
		gallery = gallery[:maxAdditionalImages]
	}
	additional := make([]string, 0, len(gallery))
	for _, path := range gallery {
		additional = append(additional, b.urls.Media(path))
	}

	gender := ExtractAttribute(v.Attributes, "Gender", "Sex")
	if gender == "" {
		gender = "unisex"
	}

	return []string{
		v.SKU,
		CleanText(v.ProductTitle),
		CleanText(v.ProductDescription),
		availability,
		"new",
		b.formatPrice(price),
		salePrice,
		b.urls.ProductVariant(v.ProductSlug, v.SKU),
		b.urls.Media(image),
		b.brand,
		v.ProductID,
		v.FirstCategory,
		ExtractAttribute(v.Attributes, "Color", "Colour", "Shade"),
		ExtractAttribute(v.Attributes, "Size", "Dimensions"),
		gender,
		"adult",
		strings.Join(additional, ","),
	}
}

func (b FeedBuilder) formatPrice(cents int64) string {
	return formatCents(cents) + " " + b.currency
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// ExtractAttribute returns the first attribute matching one of keys, trying an exact
// match before a case-insensitive one for each key.
func ExtractAttribute(attrs map[string]string, keys ...string) string {
	for _, key := range keys {
		if v, ok := attrs[key]; ok {
			return v
		}
		for k, v := range attrs {
			if strings.EqualFold(k, key) {
				return v
			}
		}
	}
	return ""
}

// CleanText strips HTML tags and collapses whitespace.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.Write(z.Text())
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
