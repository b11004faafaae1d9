package catalog

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// ProductStatus controls storefront visibility. Only Published products are listed.
type ProductStatus int

const (
	ProductStatusUnknown ProductStatus = iota
	ProductStatusDraft
	ProductStatusArchived
	ProductStatusPublished
)

func getProductStatusStrings() map[ProductStatus]string {
	//nolint:exhaustive // Unknown has no persisted form
	return map[ProductStatus]string{
		ProductStatusDraft:     "DRAFT",
		ProductStatusArchived:  "ARCHIVED",
		ProductStatusPublished: "PUBLISHED",
	}
}

func ParseProductStatus(s string) (ProductStatus, error) {
	for status, str := range getProductStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return ProductStatusUnknown, errs.NewValueIsInvalidErrorWithCause("product status", fmt.Errorf("%q is not a product status", s))
}

func (s ProductStatus) Validate() error {
	if _, ok := getProductStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("product status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s ProductStatus) String() string {
	if str, ok := getProductStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
