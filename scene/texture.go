package scene

import "image"

// Texture holds CPU-side pixel data for a 2D texture.
// GLID is set by the OpenGL backend after upload; do not access directly.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pixels in RGBA8 format (4 bytes per pixel, row-major, top-to-bottom).
	Pixels []byte
	// GLID is the OpenGL texture object ID, set by opengl.UploadTexture.
	GLID uint32
}

// NewTextureFromImage wraps a zero-origin RGBA image without copying when
// the rows are tightly packed.
func NewTextureFromImage(name string, img *image.RGBA) *Texture {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	pix := img.Pix
	if img.Stride != w*4 || img.Rect.Min != (image.Point{}) {
		pix = make([]byte, w*h*4)
		for y := 0; y < h; y++ {
			row := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
			copy(pix[y*w*4:(y+1)*w*4], img.Pix[row:row+w*4])
		}
	}
	return &Texture{Name: name, Width: w, Height: h, Pixels: pix}
}

// NewSolidTexture creates a 1x1 texture with the given RGBA color values (0–255).
func NewSolidTexture(name string, r, g, b, a uint8) *Texture {
	return &Texture{
		Name:   name,
		Width:  1,
		Height: 1,
		Pixels: []byte{r, g, b, a},
	}
}

// At returns the RGBA texel at (x, y), wrapping both coordinates.
func (t *Texture) At(x, y int) (r, g, b, a uint8) {
	x = ((x % t.Width) + t.Width) % t.Width
	y = ((y % t.Height) + t.Height) % t.Height
	i := (y*t.Width + x) * 4
	return t.Pixels[i], t.Pixels[i+1], t.Pixels[i+2], t.Pixels[i+3]
}
