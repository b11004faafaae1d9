package commands

import (
	"encoding/json"
	"errors"
	"io/fs"
	"strconv"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrImportProductsCommandIsNotConstructed = errors.New(
	"ImportProductsCommand must be created via NewImportProductsCommand constructor",
)

// Dimension is a centimetre value that arrives either as a JSON number or string.
type Dimension string

func (d *Dimension) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = Dimension(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if f, err := n.Float64(); err == nil && f == 0 {
		*d = ""
		return nil
	}
	*d = Dimension(n.String())
	return nil
}

// ImportItem is one entry of the scraped product list.
type ImportItem struct {
	SKU            string    `json:"sku"`
	Title          string    `json:"title"`
	CleanTitle     string    `json:"clean_title"`
	LocalImagePath string    `json:"local_image_path"`
	WidthCM        Dimension `json:"width_cm"`
	HeightCM       Dimension `json:"height_cm"`
	DepthCM        Dimension `json:"depth_cm"`
}

// DisplayTitle prefers the cleaned title.
func (i ImportItem) DisplayTitle() string {
	if t := strings.TrimSpace(i.CleanTitle); t != "" {
		return t
	}
	return strings.TrimSpace(i.Title)
}

type ImportProductsCommand struct { //nolint:recvcheck //using for validation
	items           []ImportItem
	images          fs.FS
	categoryTitle   string
	productTypeName string
	guard           guard.ConstructorGuard
}

// NewImportProductsCommand imports items into categoryTitle as productTypeName.
// Image paths are resolved inside images, usually the directory of the JSON file.
func NewImportProductsCommand(
	items []ImportItem,
	images fs.FS,
	categoryTitle, productTypeName string,
) (ImportProductsCommand, error) {
	var imagesErr, categoryErr, typeErr error
	if images == nil {
		imagesErr = errs.NewValueIsRequiredError("images")
	}
	if strings.TrimSpace(categoryTitle) == "" {
		categoryErr = errs.NewValueIsRequiredError("category")
	}
	if strings.TrimSpace(productTypeName) == "" {
		typeErr = errs.NewValueIsRequiredError("product type")
	}
	if err := errors.Join(imagesErr, categoryErr, typeErr); err != nil {
		return ImportProductsCommand{}, err
	}
	return ImportProductsCommand{
		items:           items,
		images:          images,
		categoryTitle:   strings.TrimSpace(categoryTitle),
		productTypeName: strings.TrimSpace(productTypeName),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c ImportProductsCommand) Validate() error {
	return c.guard.Validate(ErrImportProductsCommandIsNotConstructed)
}

func itemLabel(i ImportItem, index int) string {
	if i.SKU != "" {
		return i.SKU
	}
	return "#" + strconv.Itoa(index+1)
}
