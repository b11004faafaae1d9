package catalog

import (
	"errors"
	"slices"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrAttributeIsNotConstructed = errors.New("Attribute must be created via NewAttribute")

// Attribute is a variant dimension such as Width or Color. Empty choices accept any
// value.
type Attribute struct {
	id      kernel.UUID
	name    string
	slug    string
	choices []string
	guard   guard.ConstructorGuard
}

func NewAttribute(id kernel.UUID, name, slug string, choices []string) (*Attribute, error) {
	name = strings.TrimSpace(name)
	if slug == "" {
		slug = kernel.Slugify(name)
	}
	var verr error
	switch {
	case name == "":
		verr = errs.NewValueIsRequiredError("attribute name")
	case slug == "":
		verr = errs.NewValueIsRequiredError("attribute slug")
	}
	if err := errors.Join(id.Validate(), verr); err != nil {
		return nil, err
	}

	return &Attribute{
		id:      id,
		name:    name,
		slug:    slug,
		choices: slices.Clone(choices),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (a *Attribute) Validate() error {
	if a == nil {
		return ErrAttributeIsNotConstructed
	}
	return a.guard.Validate(ErrAttributeIsNotConstructed)
}

func (a *Attribute) ID() kernel.UUID { return a.id }
func (a *Attribute) Name() string { return a.name }
func (a *Attribute) Slug() string { return a.slug }
func (a *Attribute) Choices() []string { return slices.Clone(a.choices) }
func (a *Attribute) HasChoices() bool { return len(a.choices) > 0 }
func (a *Attribute) Allows(v string) bool { return !a.HasChoices() || slices.Contains(a.choices, v) }
