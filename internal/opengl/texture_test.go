package opengl

import (
	"bytes"
	"testing"

	"grass-field/scene"
)

func TestFlipRows(t *testing.T) {
	pix := []byte{
		1, 1,
		2, 2,
		3, 3,
	}
	flipRows(pix, 2, 3)
	want := []byte{3, 3, 2, 2, 1, 1}
	if !bytes.Equal(pix, want) {
		t.Errorf("flipRows: expected %v, got %v", want, pix)
	}

	even := []byte{1, 2, 3, 4}
	flipRows(even, 2, 2)
	if !bytes.Equal(even, []byte{3, 4, 1, 2}) {
		t.Errorf("flipRows even: got %v", even)
	}
}

func TestBottomUpRowsKeepsSource(t *testing.T) {
	tex := &scene.Texture{
		Name:   "rows",
		Width:  1,
		Height: 2,
		Pixels: []byte{10, 10, 10, 255, 20, 20, 20, 255},
	}
	pix := bottomUpRows(tex)
	if !bytes.Equal(pix, []byte{20, 20, 20, 255, 10, 10, 10, 255}) {
		t.Errorf("bottomUpRows: expected bottom row first, got %v", pix)
	}
	if tex.Pixels[0] != 10 {
		t.Error("bottomUpRows modified the texture pixels")
	}
}

func TestCstr(t *testing.T) {
	if got := cstr("time"); got != "time\x00" {
		t.Errorf("cstr: expected terminated string, got %q", got)
	}
	if got := cstr("time\x00"); got != "time\x00" {
		t.Errorf("cstr: double terminated %q", got)
	}
}
