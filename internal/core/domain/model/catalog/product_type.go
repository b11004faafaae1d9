package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrProductTypeIsNotConstructed = errors.New("ProductType must be created via NewProductType")

// ProductType groups products sharing the same variant attributes.
type ProductType struct {
	id         kernel.UUID
	name       string
	attributes []*Attribute
	guard      guard.ConstructorGuard
}

func NewProductType(id kernel.UUID, name string, attributes ...*Attribute) (*ProductType, error) {
	name = strings.TrimSpace(name)
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("product type name")
	}

	pt := &ProductType{id: id, name: name, guard: guard.NewConstructorGuard()}
	for _, a := range attributes {
		if err := pt.AllowAttribute(a); err != nil {
			return nil, err
		}
	}
	return pt, nil
}

func (pt *ProductType) Validate() error {
	if pt == nil {
		return ErrProductTypeIsNotConstructed
	}
	return pt.guard.Validate(ErrProductTypeIsNotConstructed)
}

func (pt *ProductType) ID() kernel.UUID { return pt.id }
func (pt *ProductType) Name() string { return pt.name }

func (pt *ProductType) AllowedAttributes() []*Attribute {
	return slices.Clone(pt.attributes)
}

// AllowAttribute links an attribute; linking the same slug twice is a no-op.
func (pt *ProductType) AllowAttribute(a *Attribute) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if pt.attribute(a.Slug()) != nil {
		return nil
	}
	pt.attributes = append(pt.attributes, a)
	return nil
}

func (pt *ProductType) attribute(slug string) *Attribute {
	for _, a := range pt.attributes {
		if a.Slug() == slug {
			return a
		}
	}
	return nil
}

// ValidateVariantAttributes checks attribute keys and values of a variant. Keys are
// attribute slugs: every key must be allowed by the type, every allowed attribute must be present and values
// must be among the attribute choices when it declares any.
func (pt *ProductType) ValidateVariantAttributes(attrs map[string]string) error {
	var forbidden, missing, invalid []string

	for key := range attrs {
		if pt.attribute(key) == nil {
			forbidden = append(forbidden, key)
		}
	}
	for _, a := range pt.attributes {
		value, ok := attrs[a.Slug()]
		if !ok {
			missing = append(missing, a.Slug())
			continue
		}
		if !a.Allows(value) {
			invalid = append(invalid, fmt.Sprintf("%q for %s (allowed: %s)", value, a.Slug(), strings.Join(a.Choices(), ", ")))
		}
	}

	slices.Sort(forbidden)
	slices.Sort(missing)
	slices.Sort(invalid)

	var problems []error
	if len(forbidden) > 0 {
		problems = append(problems, fmt.Errorf("attributes not allowed for product type %s: %s", pt.name, strings.Join(forbidden, ", ")))
	}
	if len(missing) > 0 {
		problems = append(problems, fmt.Errorf("missing required attributes: %s", strings.Join(missing, ", ")))
	}
	if len(invalid) > 0 {
		problems = append(problems, fmt.Errorf("invalid values: %s", strings.Join(invalid, "; ")))
	}
	if len(problems) == 0 {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("attributes", errors.Join(problems...))
}
