package catalog

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrCategoryIsNotConstructed = errors.New("Category must be created via NewCategory or RestoreCategory")

// Category is a node of the catalogue tree. Roots have no parent.
type Category struct {
	id          kernel.UUID
	parentID    *kernel.UUID
	title       string
	slug        string
	description string
	image       string
	seoMetadata map[string]any
	guard       guard.ConstructorGuard
}

// CategoryState carries persisted category fields back into the domain.
type CategoryState struct {
	ID          kernel.UUID
	ParentID    *kernel.UUID
	Title       string
	Slug        string
	Description string
	Image       string
	SEOMetadata map[string]any
}

func NewCategory(id kernel.UUID, title, slug string, parentID *kernel.UUID) (*Category, error) {
	return RestoreCategory(CategoryState{ID: id, ParentID: parentID, Title: title, Slug: slug})
}

func RestoreCategory(s CategoryState) (*Category, error) {
	c := &Category{
		description: s.Description,
		image:       s.Image,
		seoMetadata: maps.Clone(s.SEOMetadata),
		guard:       guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		c.setID(s.ID),
		c.setTitle(s.Title),
		c.setSlug(s.Slug),
	); err != nil {
		return nil, err
	}
	if err := c.MoveUnder(s.ParentID); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Category) Validate() error {
	if c == nil {
		return ErrCategoryIsNotConstructed
	}
	return c.guard.Validate(ErrCategoryIsNotConstructed)
}

func (c *Category) ID() kernel.UUID { return c.id }
func (c *Category) ParentID() *kernel.UUID { return c.parentID }
func (c *Category) Title() string { return c.title }
func (c *Category) Slug() string { return c.slug }
func (c *Category) Description() string { return c.description }
func (c *Category) Image() string { return c.image }
func (c *Category) SEOMetadata() map[string]any { return maps.Clone(c.seoMetadata) }
func (c *Category) IsRoot() bool { return c.parentID == nil }

// IsChildOf reports whether the category sits directly under parentID.
func (c *Category) IsChildOf(parentID *kernel.UUID) bool {
	if c.parentID == nil || parentID == nil {
		return c.parentID == nil && parentID == nil
	}
	return c.parentID.IsEqual(*parentID)
}

// MoveUnder re-parents the category; nil makes it a root. Deeper cycles are
// rejected by the repository, which sees the whole tree.
func (c *Category) MoveUnder(parentID *kernel.UUID) error {
	if parentID == nil {
		c.parentID = nil
		return nil
	}
	if err := parentID.Validate(); err != nil {
		return err
	}
	if parentID.IsEqual(c.id) {
		return errs.NewValueIsInvalidErrorWithCause("parent", fmt.Errorf("category %s cannot be its own parent", c.slug))
	}
	p := *parentID
	c.parentID = &p
	return nil
}

func (c *Category) SetDescription(description string) {
	c.description = strings.TrimSpace(description)
}

func (c *Category) SetImage(path string) {
	c.image = path
}

func (c *Category) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Category) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errs.NewValueIsRequiredError("category title")
	}
	c.title = title
	return nil
}

func (c *Category) setSlug(slug string) error {
	if slug == "" || slug != kernel.Slugify(slug) {
		return errs.NewValueIsInvalidErrorWithCause("category slug", fmt.Errorf("%q is not a slug", slug))
	}
	c.slug = slug
	return nil
}
