package renderer

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
)

// Screenshot writes the current back buffer to path. The format follows
// the extension: .webp or .png. Call between Render and Present.
func (re *RenderEngine) Screenshot(path string) error {
	img := re.gl.ReadPixels()
	if img.Bounds().Empty() {
		return fmt.Errorf("screenshot: empty framebuffer")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("screenshot: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	if err := EncodeImage(f, img, path); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("screenshot %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("screenshot %q: %w", path, err)
	}

	fmt.Printf("[Screenshot] %s (%dx%d)\n", path, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

// EncodeImage encodes img in the format named by the extension of name.
func EncodeImage(w io.Writer, img image.Image, name string) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".webp":
		return nativewebp.Encode(w, img, nil)
	case ".png":
		return png.Encode(w, img)
	default:
		return fmt.Errorf("unsupported image format %q", filepath.Ext(name))
	}
}
