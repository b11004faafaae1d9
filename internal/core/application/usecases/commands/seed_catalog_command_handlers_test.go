package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSeedCategoriesCommandHandler_CreatesExistingAndMoves(t *testing.T) {
	ctx := t.Context()
	animals, err := catalog.NewCategory(kernel.NewUUID(), "Animals", "animals", nil)
	require.NoError(t, err)
	other, err := catalog.NewCategory(kernel.NewUUID(), "Outdoor", "outdoor", nil)
	require.NoError(t, err)
	otherID := other.ID()
	birds, err := catalog.NewCategory(kernel.NewUUID(), "Birds", "birds", &otherID)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectTx(ctx)
	uow.categories.On("FindByTitle", ctx, "Animals").Return(animals, nil).Once()
	uow.categories.On("FindByTitle", ctx, "Wild").Return(nil, errs.NewObjectNotFoundError("category", "Wild")).Once()
	uow.categories.On("SlugExists", ctx, "wild").Return(false, nil).Once()
	uow.categories.On("Add", ctx, mock.MatchedBy(func(c *catalog.Category) bool {
		return c.Title() == "Wild" && c.Slug() == "wild" && c.IsChildOf(idPtr(animals.ID()))
	})).Return(nil).Once()
	uow.categories.On("FindByTitle", ctx, "Birds").Return(birds, nil).Once()
	uow.categories.On("Update", ctx, birds).Return(nil).Once()

	cmd, err := commands.NewSeedCategoriesCommand([]commands.CategorySeed{
		{Title: "Animals", Children: []string{"Wild", "Birds"}},
	})
	require.NoError(t, err)
	report, err := commands.NewSeedCategoriesCommandHandler(factory[commands.CatalogUoW]{uow}).Handle(ctx, cmd)
	require.NoError(t, err)

	outcomes := make([]string, 0, len(report))
	for _, line := range report {
		outcomes = append(outcomes, line.String())
	}
	assert.Equal(t, []string{
		`EXISTED: "Animals"`,
		"\tCREATED: \"Wild\"",
		"\tMOVED: \"Birds\" under \"Animals\"",
		"\tEXISTED: \"Birds\"",
	}, outcomes)
	assert.True(t, birds.IsChildOf(idPtr(animals.ID())))
	uow.assertAll(t)
}

func TestSeedCategoriesCommandHandler_UsesFreeSlug(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.expectTx(ctx)
	uow.categories.On("FindByTitle", ctx, "Wall Art").Return(nil, errs.NewObjectNotFoundError("category", "Wall Art")).Once()
	uow.categories.On("SlugExists", ctx, "wall-art").Return(true, nil).Once()
	uow.categories.On("SlugExists", ctx, "wall-art-2").Return(false, nil).Once()
	uow.categories.On("Add", ctx, mock.MatchedBy(func(c *catalog.Category) bool {
		return c.Slug() == "wall-art-2" && c.IsRoot()
	})).Return(nil).Once()

	cmd, err := commands.NewSeedCategoriesCommand([]commands.CategorySeed{{Title: "Wall Art"}})
	require.NoError(t, err)
	report, err := commands.NewSeedCategoriesCommandHandler(factory[commands.CatalogUoW]{uow}).Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.Equal(t, commands.SeedCreated, report[0].Outcome)
	uow.assertAll(t)
}

func TestSeedProductTypesCommandHandler_LinksAttributes(t *testing.T) {
	ctx := t.Context()
	width, err := catalog.NewAttribute(kernel.NewUUID(), "Width", "width", nil)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectTx(ctx)
	uow.productTypes.On("FindAttributeBySlug", ctx, "width").Return(width, nil).Once()
	uow.productTypes.On("FindAttributeBySlug", ctx, "color").
		Return(nil, errs.NewObjectNotFoundError("attribute", "color")).Once()
	uow.productTypes.On("AddAttribute", ctx, mock.MatchedBy(func(a *catalog.Attribute) bool {
		return a.Slug() == "color" && !a.HasChoices()
	})).Return(nil).Once()
	uow.productTypes.On("FindByName", ctx, "Sculpture").
		Return(nil, errs.NewObjectNotFoundError("product type", "Sculpture")).Once()
	uow.productTypes.On("Add", ctx, mock.MatchedBy(func(pt *catalog.ProductType) bool {
		return pt.Name() == "Sculpture" && len(pt.AllowedAttributes()) == 2
	})).Return(nil).Once()

	cmd, err := commands.NewSeedProductTypesCommand([]commands.ProductTypeSeed{{
		Name: "Sculpture",
		Attributes: []commands.AttributeSeed{
			{Name: "Width", Slug: "width"},
			{Name: "Color", Slug: "color"},
		},
	}})
	require.NoError(t, err)
	report, err := commands.NewSeedProductTypesCommandHandler(factory[commands.CatalogUoW]{uow}).Handle(ctx, cmd)
	require.NoError(t, err)

	require.Len(t, report, 3)
	assert.Equal(t, commands.SeedExisted, report[0].Outcome)
	assert.Equal(t, commands.SeedCreated, report[1].Outcome)
	assert.Equal(t, commands.SeedLine{Kind: "product type", Title: "Sculpture", Outcome: commands.SeedCreated}, report[2])
	uow.assertAll(t)
}

func TestNewSeedCategoriesCommand_RejectsBlankTitles(t *testing.T) {
	_, err := commands.NewSeedCategoriesCommand([]commands.CategorySeed{{Title: " ", Children: []string{""}}})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	_, err = commands.NewSeedCategoriesCommand(nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
