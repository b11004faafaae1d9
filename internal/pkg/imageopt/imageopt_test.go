package imageopt

import (
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int, alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: alpha})
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func writeJPEG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 100}))
}

func TestSources_FiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.PNG", "a.jpg", "c.webp", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.jpg"), 0o755))

	got, err := Sources(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.PNG"),
		filepath.Join(dir, "c.webp"),
	}, got)
}

func TestOptimizeDir(t *testing.T) {
	dir := t.TempDir()
	writeJPEG(t, filepath.Join(dir, "lion.jpg"), gradient(400, 200, 255))
	writePNG(t, filepath.Join(dir, "owl.png"), gradient(300, 300, 200))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.jpeg"), []byte("not an image"), 0o644))

	report, err := OptimizeDir(context.Background(), dir, Options{Workers: 2, MaxWidth: 100})

	require.NoError(t, err)
	require.Len(t, report.Files, 3)
	assert.Equal(t, 1, report.Failed())

	byName := map[string]FileResult{}
	for _, f := range report.Files {
		byName[filepath.Base(f.Source)] = f
	}
	assert.Error(t, byName["broken.jpeg"].Err)

	lion := byName["lion.jpg"]
	require.NoError(t, lion.Err)
	assert.Equal(t, filepath.Join(dir, OutputDir, "lion.jpg"), lion.Output)
	assert.Less(t, lion.After, lion.Before)

	f, err := os.Open(lion.Output)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := jpeg.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)

	assert.Equal(t, report.SavedBytes(), lion.Saved()+byName["owl.png"].Saved())
}

func TestOptimizeFile_LossyPNGIsPaletted(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "owl.png")
	writePNG(t, src, gradient(64, 64, 255))

	res := OptimizeFile(src, dir+"/out", Options{Lossy: true})
	require.Error(t, res.Err, "output directory does not exist")

	require.NoError(t, os.Mkdir(dir+"/out", 0o755))
	res = OptimizeFile(src, dir+"/out", Options{Lossy: true})
	require.NoError(t, res.Err)

	f, err := os.Open(res.Output)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	paletted, ok := img.(*image.Paletted)
	require.True(t, ok)
	assert.LessOrEqual(t, len(paletted.Palette), 256)
}

func TestFlatten_UsesWhiteBackground(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{})

	r, g, b, a := flatten(img).At(0, 0).RGBA()

	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff, 0xffff}, []uint32{r, g, b, a})
}

func TestOptimizeDir_MissingDirectory(t *testing.T) {
	_, err := OptimizeDir(context.Background(), filepath.Join(t.TempDir(), "missing"), Options{})
	assert.Error(t, err)
}
