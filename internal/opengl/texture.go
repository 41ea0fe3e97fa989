package opengl

import (
	"fmt"
	"image"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"grass-field/scene"
)

// UploadTexture uploads a scene.Texture to the GPU and sets its GLID field.
// Call this from the main goroutine (OpenGL context must be current).
// Wrapping repeats so shaders may sample outside [0, 1]. Rows go up
// bottom first, so v = 0 samples the last image row.
func UploadTexture(tex *scene.Texture) error {
	if tex == nil {
		return fmt.Errorf("nil texture")
	}
	if len(tex.Pixels) == 0 {
		return fmt.Errorf("texture %q has no pixel data", tex.Name)
	}
	if len(tex.Pixels) < tex.Width*tex.Height*4 {
		return fmt.Errorf("texture %q: %d bytes for %dx%d", tex.Name, len(tex.Pixels), tex.Width, tex.Height)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	pix := bottomUpRows(tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(tex.Width),
		int32(tex.Height),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		unsafe.Pointer(&pix[0]),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	tex.GLID = id
	fmt.Printf("[Texture] uploaded %q (%dx%d)\n", tex.Name, tex.Width, tex.Height)
	return nil
}

// DeleteTexture frees a previously uploaded GPU texture and zeroes its GLID.
func DeleteTexture(tex *scene.Texture) {
	if tex == nil || tex.GLID == 0 {
		return
	}
	gl.DeleteTextures(1, &tex.GLID)
	tex.GLID = 0
}

// ReadPixels copies the default framebuffer into a top-down RGBA image.
func (r *Renderer) ReadPixels() *image.RGBA {
	w, h := int(r.viewportW), int(r.viewportH)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return img
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	flipRows(img.Pix, w*4, h)
	return img
}

// bottomUpRows copies the pixels of tex with the row order reversed.
func bottomUpRows(tex *scene.Texture) []byte {
	n := tex.Width * tex.Height * 4
	pix := make([]byte, n)
	copy(pix, tex.Pixels[:n])
	flipRows(pix, tex.Width*4, tex.Height)
	return pix
}

// flipRows reverses row order in place; GL returns the bottom row first.
func flipRows(pix []byte, stride, rows int) {
	tmp := make([]byte, stride)
	for top, bot := 0, rows-1; top < bot; top, bot = top+1, bot-1 {
		a := pix[top*stride : (top+1)*stride]
		b := pix[bot*stride : (bot+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}
