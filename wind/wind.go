// Package wind holds the grass sway shader and a CPU mirror of its maths.
package wind

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"grass-field/core"
)

// Params sets sway strength (Power) and how fast the sine varies across
// the field (Freq) on each horizontal axis.
type Params struct {
	XPower float32 `json:"x_power"`
	ZPower float32 `json:"z_power"`
	XFreq  float32 `json:"x_freq"`
	ZFreq  float32 `json:"z_freq"`
}

func DefaultParams() Params {
	return Params{XPower: 0.1, ZPower: 0.2, XFreq: 2.0, ZFreq: 3.0}
}

// Colours of the default height gradient.
var (
	RootColor = core.Color3(0.0, 0.2, 0.0)
	TipColor  = core.Color3(0.8, 1.0, 0.0)
)

// Sway applies the vertex-stage displacement to p. noise is the averaged
// noise sample (1 when the noise texture is off). The z offset reads the
// undisplaced x, as the shader does.
func Sway(p mgl32.Vec3, t, noise float32, params Params) mgl32.Vec3 {
	out := p
	out[0] += params.XPower * math32.Sin(p.Z()*params.XFreq*noise+t) * p.Y()
	out[2] += params.ZPower * math32.Sin(p.X()*params.ZFreq*noise+t) * p.Y()
	return out
}

// NoiseUV is the texture coordinate the shader samples for p.
func NoiseUV(p mgl32.Vec3, maxPos mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{p.X() / maxPos.X(), p.Z() / maxPos.Y()}
}

// NoiseValue averages the RGB channels of an 8-bit texel into [0, 1].
func NoiseValue(r, g, b uint8) float32 {
	return (float32(r) + float32(g) + float32(b)) / (3 * 255)
}

// MaxOffset is the largest horizontal displacement a vertex at height y
// can reach on each axis.
func MaxOffset(y float32, params Params) (dx, dz float32) {
	return math32.Abs(params.XPower * y), math32.Abs(params.ZPower * y)
}

// Gradient is the fragment colour at height y.
func Gradient(root, tip core.Color, y float32) core.Color {
	c := root.Lerp(tip, y)
	c.A = 1
	return c
}
