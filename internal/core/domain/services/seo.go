package services

import "maps"

const defaultRobots = "index, follow, max-image-preview:large, max-snippet:-1, max-video-preview:-1"

// SEOInput is what a page contributes to its metadata.
type SEOInput struct {
	Title       string
	Description string
	Image       string
	Canonical   string
	// Price is set for product pages only.
	Price *SEOPrice
	// Overrides replace computed keys.
	Overrides map[string]any
}

type SEOPrice struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// SEOBuilder produces the seo_metadata object served with products and categories.
type SEOBuilder struct {
	siteName string
	urls     URLBuilder
}

func NewSEOBuilder(siteName string, urls URLBuilder) SEOBuilder {
	return SEOBuilder{siteName: siteName, urls: urls}
}

func (b SEOBuilder) Build(in SEOInput) map[string]any {
	image := b.urls.Media(in.Image)
	ogType := "website"
	if in.Price != nil {
		ogType = "product"
	}

	data := map[string]any{
		"title":              in.Title,
		"description":        in.Description,
		"canonical":          in.Canonical,
		"ogTitle":            in.Title,
		"ogDescription":      in.Description,
		"ogImage":            image,
		"ogUrl":              in.Canonical,
		"ogType":             ogType,
		"ogSiteName":         b.siteName,
		"twitterCard":        "summary_large_image",
		"twitterTitle":       in.Title,
		"twitterDescription": in.Description,
		"twitterImage":       image,
		"robots":             defaultRobots,
	}
	if in.Price != nil {
		data["price"] = map[string]any{"amount": in.Price.Amount, "currency": in.Price.Currency}
	}
	maps.Copy(data, in.Overrides)
	return data
}

func (b SEOBuilder) Product(title, description, thumbnail, slug string, price SEOPrice, overrides map[string]any) map[string]any {
	return b.Build(SEOInput{
		Title:       title,
		Description: description,
		Image:       thumbnail,
		Canonical:   b.urls.Product(slug),
		Price:       &price,
		Overrides:   overrides,
	})
}

func (b SEOBuilder) Category(title, description, image, slug string, overrides map[string]any) map[string]any {
	return b.Build(SEOInput{
		Title:       title,
		Description: description,
		Image:       image,
		Canonical:   b.urls.Category(slug),
		Overrides:   overrides,
	})
}
