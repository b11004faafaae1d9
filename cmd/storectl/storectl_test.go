package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"storefront/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCategorySeeds(t *testing.T) {
	seeds, err := parseCategorySeeds(defaultCategories)
	require.NoError(t, err)

	titles := make([]string, 0, len(seeds))
	for _, s := range seeds {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"Animals", "Wall Art", "Accents", "Outdoor", "Collections"}, titles)
	assert.Equal(t, []string{"Wild", "Farm", "Birds", "Aquatic"}, seeds[0].Children)

	_, err = commands.NewSeedCategoriesCommand(seeds)
	assert.NoError(t, err)
}

func TestDefaultProductTypeSeeds(t *testing.T) {
	seeds, err := parseProductTypeSeeds(defaultProductTypes)
	require.NoError(t, err)

	require.Len(t, seeds, 1)
	assert.Equal(t, "Sculpture", seeds[0].Name)
	slugs := make([]string, 0, len(seeds[0].Attributes))
	for _, a := range seeds[0].Attributes {
		slugs = append(slugs, a.Slug)
	}
	assert.Equal(t, []string{"width", "height", "depth", "color"}, slugs)
}

func TestReadSeed_PrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- title: Lamps\n"), 0o644))

	raw, err := readSeed(path, defaultCategories)
	require.NoError(t, err)
	seeds, err := parseCategorySeeds(raw)
	require.NoError(t, err)
	assert.Equal(t, []commands.CategorySeed{{Title: "Lamps"}}, seeds)
}

func TestReadImportItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"sku":"LION-1","title":"Bronze Lion 40cm","clean_title":"Bronze Lion","local_image_path":"img/lion.jpg","width_cm":40}
	]`), 0o644))

	items, err := readImportItems(path)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Bronze Lion", items[0].DisplayTitle())
	assert.Equal(t, "img/lion.jpg", items[0].LocalImagePath)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{
		"migrate", "seed-categories", "seed-product-types", "import-products",
		"auto-categorize", "optimize-images", "generate-feed",
	} {
		found, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, found.Name())
	}
}

func TestOptimizeImagesCommand(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}
	img.SetNRGBA(0, 0, color.NRGBA{A: 255})
	f, err := os.Create(filepath.Join(dir, "owl.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"optimize-images", dir, "--workers", "2", "--lossy"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "owl.png: ")
	assert.Contains(t, out.String(), "Done! Total saved:")
	assert.FileExists(t, filepath.Join(dir, "optimized", "owl.png"))
}

func TestOptimizeImagesCommand_EmptyDirectory(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"optimize-images", t.TempDir()})

	require.NoError(t, root.Execute())
	assert.Equal(t, "No images found.\n", out.String())
}
