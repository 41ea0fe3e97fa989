package core

// Color is a linear RGBA colour. Materials that only take an RGB triple
// (Color3 in shader terms) ignore A.
type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// Color3 builds an opaque colour from an RGB triple.
func Color3(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Lerp mixes c towards other by t without clamping, matching GLSL mix().
func (c Color) Lerp(other Color, t float32) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// RGB returns the colour as a vec3 for uniform upload.
func (c Color) RGB() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}
