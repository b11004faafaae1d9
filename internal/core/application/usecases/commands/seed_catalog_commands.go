package commands

import (
	"errors"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrSeedCommandIsNotConstructed = errors.New(
	"seed commands must be created via their New...Command constructors",
)

// CategorySeed is a root category with the titles of its children.
type CategorySeed struct {
	Title    string   `yaml:"title"`
	Children []string `yaml:"children"`
}

type SeedCategoriesCommand struct { //nolint:recvcheck //using for validation
	roots []CategorySeed
	guard guard.ConstructorGuard
}

func NewSeedCategoriesCommand(roots []CategorySeed) (SeedCategoriesCommand, error) {
	if len(roots) == 0 {
		return SeedCategoriesCommand{}, errs.NewValueIsRequiredError("categories")
	}
	var problems []error
	for _, r := range roots {
		if strings.TrimSpace(r.Title) == "" {
			problems = append(problems, errs.NewValueIsRequiredError("category title"))
		}
		for _, child := range r.Children {
			if strings.TrimSpace(child) == "" {
				problems = append(problems, errs.NewValueIsRequiredError("child category title of "+r.Title))
			}
		}
	}
	if err := errors.Join(problems...); err != nil {
		return SeedCategoriesCommand{}, err
	}
	return SeedCategoriesCommand{roots: roots, guard: guard.NewConstructorGuard()}, nil
}

func (c SeedCategoriesCommand) Validate() error {
	return c.guard.Validate(ErrSeedCommandIsNotConstructed)
}

// AttributeSeed describes an attribute to get-or-create by slug.
type AttributeSeed struct {
	Name    string   `yaml:"name"`
	Slug    string   `yaml:"slug"`
	Choices []string `yaml:"choices"`
}

// ProductTypeSeed is a product type with the attributes its variants must carry.
type ProductTypeSeed struct {
	Name       string          `yaml:"name"`
	Attributes []AttributeSeed `yaml:"attributes"`
}

type SeedProductTypesCommand struct { //nolint:recvcheck //using for validation
	types []ProductTypeSeed
	guard guard.ConstructorGuard
}

func NewSeedProductTypesCommand(types []ProductTypeSeed) (SeedProductTypesCommand, error) {
	if len(types) == 0 {
		return SeedProductTypesCommand{}, errs.NewValueIsRequiredError("product types")
	}
	var problems []error
	for _, pt := range types {
		if strings.TrimSpace(pt.Name) == "" {
			problems = append(problems, errs.NewValueIsRequiredError("product type name"))
		}
		for _, a := range pt.Attributes {
			if strings.TrimSpace(a.Name) == "" || strings.TrimSpace(a.Slug) == "" {
				problems = append(problems, errs.NewValueIsRequiredError("attribute name and slug"))
			}
		}
	}
	if err := errors.Join(problems...); err != nil {
		return SeedProductTypesCommand{}, err
	}
	return SeedProductTypesCommand{types: types, guard: guard.NewConstructorGuard()}, nil
}

func (c SeedProductTypesCommand) Validate() error {
	return c.guard.Validate(ErrSeedCommandIsNotConstructed)
}
