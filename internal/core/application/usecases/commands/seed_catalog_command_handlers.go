package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// SeedOutcome is what happened to one seeded record.
type SeedOutcome string

const (
	SeedCreated SeedOutcome = "CREATED"
	SeedExisted SeedOutcome = "EXISTED"
	SeedMoved   SeedOutcome = "MOVED"
)

// SeedLine reports one record in seeding order. Depth is 0 for roots.
type SeedLine struct {
	Kind    string
	Title   string
	Parent  string
	Depth   int
	Outcome SeedOutcome
}

func (l SeedLine) String() string {
	indent := strings.Repeat("\t", l.Depth)
	if l.Outcome == SeedMoved {
		return fmt.Sprintf("%s%s: %q under %q", indent, l.Outcome, l.Title, l.Parent)
	}
	return fmt.Sprintf("%s%s: %q", indent, l.Outcome, l.Title)
}

type SeedCategoriesCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewSeedCategoriesCommandHandler(uowFactory CatalogUoWFactory) SeedCategoriesCommandHandler {
	return SeedCategoriesCommandHandler{uowFactory: uowFactory}
}

// Handle gets or creates every category by title in one transaction. A child that
// exists under another parent is moved, in which case a MOVED line precedes its
// EXISTED line.
func (h SeedCategoriesCommandHandler) Handle(ctx context.Context, cmd SeedCategoriesCommand) ([]SeedLine, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var report []SeedLine
	for _, root := range cmd.roots {
		parent, created, err := h.getOrCreate(ctx, uow, root.Title, nil)
		if err != nil {
			return nil, err
		}
		report = append(report, SeedLine{Kind: "category", Title: parent.Title(), Outcome: outcome(created)})

		parentID := parent.ID()
		for _, title := range root.Children {
			child, childCreated, err := h.getOrCreate(ctx, uow, title, &parentID)
			if err != nil {
				return nil, err
			}
			if !childCreated && !child.IsChildOf(&parentID) {
				if err = child.MoveUnder(&parentID); err != nil {
					return nil, err
				}
				if err = uow.CategoryRepository().Update(ctx, child); err != nil {
					return nil, err
				}
				report = append(report, SeedLine{
					Kind: "category", Title: child.Title(), Parent: parent.Title(), Depth: 1, Outcome: SeedMoved,
				})
			}
			report = append(report, SeedLine{
				Kind: "category", Title: child.Title(), Parent: parent.Title(), Depth: 1, Outcome: outcome(childCreated),
			})
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return report, nil
}

func (h SeedCategoriesCommandHandler) getOrCreate(
	ctx context.Context,
	uow CatalogUoW,
	title string,
	parentID *kernel.UUID,
) (*catalog.Category, bool, error) {
	categories := uow.CategoryRepository()
	existing, err := categories.FindByTitle(ctx, title)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, false, err
	}

	slug, err := kernel.UniqueSlug(ctx, kernel.Slugify(title), categories.SlugExists)
	if err != nil {
		return nil, false, err
	}
	c, err := catalog.NewCategory(kernel.NewUUID(), title, slug, parentID)
	if err != nil {
		return nil, false, err
	}
	if err = categories.Add(ctx, c); err != nil {
		return nil, false, err
	}
	return c, true, nil
}

type SeedProductTypesCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewSeedProductTypesCommandHandler(uowFactory CatalogUoWFactory) SeedProductTypesCommandHandler {
	return SeedProductTypesCommandHandler{uowFactory: uowFactory}
}

// Handle gets or creates attributes by slug and product types by name, then links
// the attributes to their type.
func (h SeedProductTypesCommandHandler) Handle(ctx context.Context, cmd SeedProductTypesCommand) ([]SeedLine, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	types := uow.ProductTypeRepository()
	var report []SeedLine
	for _, seed := range cmd.types {
		attributes := make([]*catalog.Attribute, 0, len(seed.Attributes))
		for _, as := range seed.Attributes {
			a, created, err := h.getOrCreateAttribute(ctx, uow, as)
			if err != nil {
				return nil, err
			}
			attributes = append(attributes, a)
			report = append(report, SeedLine{Kind: "attribute", Title: a.Name(), Depth: 1, Outcome: outcome(created)})
		}

		pt, err := types.FindByName(ctx, seed.Name)
		switch {
		case err == nil:
			for _, a := range attributes {
				if err = pt.AllowAttribute(a); err != nil {
					return nil, err
				}
			}
			if err = types.Update(ctx, pt); err != nil {
				return nil, err
			}
			report = append(report, SeedLine{Kind: "product type", Title: pt.Name(), Outcome: SeedExisted})
		case errors.Is(err, errs.ErrObjectNotFound):
			pt, err = catalog.NewProductType(kernel.NewUUID(), seed.Name, attributes...)
			if err != nil {
				return nil, err
			}
			if err = types.Add(ctx, pt); err != nil {
				return nil, err
			}
			report = append(report, SeedLine{Kind: "product type", Title: pt.Name(), Outcome: SeedCreated})
		default:
			return nil, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return report, nil
}

func (h SeedProductTypesCommandHandler) getOrCreateAttribute(
	ctx context.Context,
	uow CatalogUoW,
	seed AttributeSeed,
) (*catalog.Attribute, bool, error) {
	types := uow.ProductTypeRepository()
	existing, err := types.FindAttributeBySlug(ctx, seed.Slug)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, false, err
	}

	a, err := catalog.NewAttribute(kernel.NewUUID(), seed.Name, seed.Slug, seed.Choices)
	if err != nil {
		return nil, false, err
	}
	if err = types.AddAttribute(ctx, a); err != nil {
		return nil, false, err
	}
	return a, true, nil
}

func outcome(created bool) SeedOutcome {
	if created {
		return SeedCreated
	}
	return SeedExisted
}
