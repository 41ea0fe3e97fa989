package renderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/webp"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = 64
		img.Pix[i+1] = 200
		img.Pix[i+2] = 16
		img.Pix[i+3] = 255
	}
	return img
}

func TestEncodeImagePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeImage(&buf, testImage(), "shot.PNG"); err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 64 || g>>8 != 200 || b>>8 != 16 {
		t.Errorf("pixel: got %v", img.At(1, 1))
	}
}

func TestEncodeImageWebP(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeImage(&buf, testImage(), "shot.webp"); err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}
	img, err := webp.Decode(&buf)
	if err != nil {
		t.Fatalf("webp.Decode: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("size: got %v", img.Bounds())
	}
	got := color.NRGBAModel.Convert(img.At(2, 2)).(color.NRGBA)
	if got.R != 64 || got.G != 200 || got.B != 16 {
		t.Errorf("lossless pixel: got %v", got)
	}
}

func TestEncodeImageUnknown(t *testing.T) {
	if err := EncodeImage(&bytes.Buffer{}, testImage(), "shot.gif"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
