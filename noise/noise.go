// Package noise supplies the texture that breaks up the wind pattern: a
// remote or local image, or a generated simplex field when neither loads.
package noise

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/ftrvxmtrx/tga"
	"github.com/ojrac/opensimplex-go"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// DefaultURL is the distortion map the playground scene samples.
const DefaultURL = "https://www.babylonjs-playground.com/textures/distortion.png"

var client = &http.Client{Timeout: 15 * time.Second}

// Fetch downloads and decodes an image over HTTP(S).
func Fetch(ctx context.Context, rawURL string) (*image.RGBA, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("noise: request %q: %w", rawURL, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("noise: fetch %q: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("noise: fetch %q: %s", rawURL, resp.Status)
	}

	name := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		name = u.Path
	}
	return Decode(resp.Body, name)
}

// Load reads and decodes an image file from disk.
func Load(p string) (*image.RGBA, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("noise: open %q: %w", p, err)
	}
	defer f.Close()
	return Decode(f, p)
}

// Decode picks a decoder from the extension of name. TGA has no magic
// number, so sniffing is only used for unknown extensions.
func Decode(r io.Reader, name string) (*image.RGBA, error) {
	var (
		img image.Image
		err error
	)
	switch strings.ToLower(path.Ext(name)) {
	case ".png":
		img, err = png.Decode(r)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(r)
	case ".tga":
		img, err = tga.Decode(r)
	case ".bmp":
		img, err = bmp.Decode(r)
	case ".webp":
		img, err = webp.Decode(r)
	default:
		img, _, err = image.Decode(r)
	}
	if err != nil {
		return nil, fmt.Errorf("noise: decode %q: %w", name, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA converts any image to a zero-origin RGBA8 image.
func ToRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Fit downsamples img so neither side exceeds maxSize. maxSize <= 0 or an
// image already small enough is returned unchanged.
func Fit(img *image.RGBA, maxSize int) *image.RGBA {
	b := img.Bounds()
	if maxSize <= 0 || (b.Dx() <= maxSize && b.Dy() <= maxSize) {
		return img
	}
	w, h := maxSize, maxSize
	if b.Dx() > b.Dy() {
		h = max(1, b.Dy()*maxSize/b.Dx())
	} else {
		w = max(1, b.Dx()*maxSize/b.Dy())
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Generate builds a grey simplex noise image that tiles in both directions,
// so it wraps cleanly under a repeating sampler. scale is the feature size
// in texels.
func Generate(width, height int, seed int64, scale float64) *image.RGBA {
	if scale <= 0 {
		scale = 32
	}
	n := opensimplex.NewNormalized(seed)
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	// Walk a torus in 4D: each image axis maps to one circle.
	rx := float64(width) / (2 * math.Pi * scale)
	rz := float64(height) / (2 * math.Pi * scale)
	for y := 0; y < height; y++ {
		v := 2 * math.Pi * float64(y) / float64(height)
		for x := 0; x < width; x++ {
			u := 2 * math.Pi * float64(x) / float64(width)
			val := n.Eval4(rx*math.Cos(u), rx*math.Sin(u), rz*math.Cos(v), rz*math.Sin(v))
			g := uint8(math.Round(clamp01(val) * 255))
			i := img.PixOffset(x, y)
			img.Pix[i] = g
			img.Pix[i+1] = g
			img.Pix[i+2] = g
			img.Pix[i+3] = 255
		}
	}
	return img
}

// Resolve returns the noise image for src: an http(s) URL is fetched, any
// other non-empty string is read as a file. An empty src or a failed load
// falls back to Generate with seed, so Resolve always returns an image.
func Resolve(ctx context.Context, src string, seed int64) *image.RGBA {
	var (
		img *image.RGBA
		err error
	)
	switch {
	case src == "":
		err = fmt.Errorf("noise: no source configured")
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		img, err = Fetch(ctx, src)
	default:
		img, err = Load(src)
	}
	if err != nil {
		fmt.Printf("[Noise] %v (using generated noise)\n", err)
		return Generate(256, 256, seed, 32)
	}
	fmt.Printf("[Noise] loaded %s (%dx%d)\n", src, img.Bounds().Dx(), img.Bounds().Dy())
	return img
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
