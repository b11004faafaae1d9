// Package imageopt re-encodes product photos for the web.
//
// JPEG is written at quality 85 and PNG with best compression, or quantised to a
// 256-colour palette in lossy mode. WEBP is decoded and written as JPEG, with
// transparency flattened onto white. Images wider than MaxWidth are scaled down.
package imageopt

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

const (
	OutputDir   = "optimized"
	JPEGQuality = 85
)

// Options controls one optimisation run.
type Options struct {
	Workers int
	// Lossy quantises PNG files to 256 colours.
	Lossy bool
	// MaxWidth scales wider images down, keeping the aspect ratio. Zero keeps the size.
	MaxWidth int
}

// FileResult is the outcome for one source file.
type FileResult struct {
	Source string
	Output string
	Before int64
	After  int64
	Err    error
}

// Saved is the byte difference, negative when the output grew.
func (r FileResult) Saved() int64 {
	return r.Before - r.After
}

type Report struct {
	Files []FileResult
}

// SavedBytes sums the savings of successful files.
func (r Report) SavedBytes() int64 {
	var total int64
	for _, f := range r.Files {
		if f.Err == nil {
			total += f.Saved()
		}
	}
	return total
}

func (r Report) SavedMB() float64 {
	return float64(r.SavedBytes()) / (1024 * 1024)
}

func (r Report) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

var supported = []string{".jpg", ".jpeg", ".png", ".webp"}

// Sources lists the supported images directly inside dir, sorted by name.
func Sources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if slices.Contains(supported, strings.ToLower(filepath.Ext(e.Name()))) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out, nil
}

// OptimizeDir optimises every supported image in dir into dir/optimized. A file
// that fails is reported in its FileResult and does not stop the others.
func OptimizeDir(ctx context.Context, dir string, opts Options) (Report, error) {
	sources, err := Sources(dir)
	if err != nil {
		return Report{}, err
	}
	outDir := filepath.Join(dir, OutputDir)
	if err = os.MkdirAll(outDir, 0o755); err != nil {
		return Report{}, err
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	results := make([]FileResult, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = OptimizeFile(src, outDir, opts)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return Report{Files: results}, err
	}
	return Report{Files: results}, nil
}

// OptimizeFile writes the optimised version of src into outDir.
func OptimizeFile(src, outDir string, opts Options) FileResult {
	res := FileResult{Source: src}
	raw, err := os.ReadFile(src)
	if err != nil {
		res.Err = err
		return res
	}
	res.Before = int64(len(raw))

	ext := strings.ToLower(filepath.Ext(src))
	img, err := decode(ext, raw)
	if err != nil {
		res.Err = fmt.Errorf("decode %s: %w", filepath.Base(src), err)
		return res
	}
	img = fitWidth(img, opts.MaxWidth)

	var buf bytes.Buffer
	outExt := ext
	switch ext {
	case ".png":
		err = encodePNG(&buf, img, opts.Lossy)
	case ".webp":
		outExt = ".jpg"
		err = encodeJPEG(&buf, img)
	default:
		err = encodeJPEG(&buf, img)
	}
	if err != nil {
		res.Err = fmt.Errorf("encode %s: %w", filepath.Base(src), err)
		return res
	}

	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + outExt
	res.Output = filepath.Join(outDir, name)
	if err = os.WriteFile(res.Output, buf.Bytes(), 0o644); err != nil {
		res.Err = err
		return res
	}
	res.After = int64(buf.Len())
	return res
}

func decode(ext string, raw []byte) (image.Image, error) {
	r := bytes.NewReader(raw)
	switch ext {
	case ".png":
		return png.Decode(r)
	case ".webp":
		return webp.Decode(r)
	default:
		return jpeg.Decode(r)
	}
}

func fitWidth(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	height := max(1, b.Dy()*maxWidth/b.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// flatten composites img over white, dropping transparency.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

func encodeJPEG(buf *bytes.Buffer, img image.Image) error {
	return jpeg.Encode(buf, flatten(img), &jpeg.Options{Quality: JPEGQuality})
}

func encodePNG(buf *bytes.Buffer, img image.Image, lossy bool) error {
	if lossy {
		img = quantize(img)
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(buf, img)
}

// quantize maps img onto a fixed 256-colour palette with Floyd-Steinberg
// dithering. Index 0 is reserved for full transparency.
func quantize(img image.Image) *image.Paletted {
	pal := make(color.Palette, 0, 256)
	pal = append(pal, color.Transparent)
	pal = append(pal, palette.WebSafe...)
	for _, c := range palette.Plan9 {
		if len(pal) == cap(pal) {
			break
		}
		if !slices.Contains(pal, c) {
			pal = append(pal, c)
		}
	}

	b := img.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), pal)
	draw.FloydSteinberg.Draw(dst, dst.Bounds(), img, b.Min)
	return dst
}
