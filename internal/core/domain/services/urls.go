package services

import (
	"fmt"
	"net/url"
	"strings"
)

// URLBuilder turns slugs and stored media paths into absolute URLs.
type URLBuilder struct {
	frontend string
	backend  string
	media    string
}

func NewURLBuilder(frontendBaseURL, backendBaseURL, mediaBaseURL string) URLBuilder {
	trim := func(s string) string { return strings.TrimRight(strings.TrimSpace(s), "/") }
	media := trim(mediaBaseURL)
	if media == "" {
		media = trim(backendBaseURL) + "/media"
	}
	return URLBuilder{frontend: trim(frontendBaseURL), backend: trim(backendBaseURL), media: media}
}

func (b URLBuilder) Product(slug string) string {
	return fmt.Sprintf("%s/products/%s", b.frontend, slug)
}

// ProductVariant links a feed row to the product page with the variant preselected.
func (b URLBuilder) ProductVariant(slug, sku string) string {
	return fmt.Sprintf("%s/products/%s?sku=%s", b.frontend, slug, url.QueryEscape(sku))
}

func (b URLBuilder) Category(slug string) string {
	return fmt.Sprintf("%s/categories/%s", b.frontend, slug)
}

func (b URLBuilder) ThankYou(orderID string) string {
	return fmt.Sprintf("%s/thank-you/%s", b.frontend, orderID)
}

func (b URLBuilder) Checkout() string {
	return b.frontend + "/checkout"
}

// Media resolves a stored path. Absolute URLs pass through; empty stays empty.
func (b URLBuilder) Media(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return b.media + "/" + strings.TrimLeft(path, "/")
}

// Flag is the static flag icon of a country.
func (b URLBuilder) Flag(code string) string {
	return fmt.Sprintf("%s/static/flags/%s.gif", b.backend, strings.ToLower(code))
}
