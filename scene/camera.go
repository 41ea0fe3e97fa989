package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ArcRotateCamera orbits Target on a sphere. Alpha is the longitudinal
// angle in the XZ plane, Beta the latitude measured from +Y.
type ArcRotateCamera struct {
	Name   string
	Alpha  float32
	Beta   float32
	Radius float32
	Target mgl32.Vec3

	FOV         float32 // vertical, radians
	AspectRatio float32
	MinZ        float32
	MaxZ        float32

	LowerBetaLimit   float32
	UpperBetaLimit   float32
	LowerRadiusLimit float32
	UpperRadiusLimit float32 // 0 = unlimited
}

func NewArcRotateCamera(name string, alpha, beta, radius float32, target mgl32.Vec3) *ArcRotateCamera {
	c := &ArcRotateCamera{
		Name:             name,
		Alpha:            alpha,
		Beta:             beta,
		Radius:           radius,
		Target:           target,
		FOV:              0.8,
		AspectRatio:      16.0 / 9.0,
		MinZ:             0.1,
		MaxZ:             1000,
		LowerBetaLimit:   0.01,
		UpperBetaLimit:   math32.Pi - 0.01,
		LowerRadiusLimit: 0.5,
	}
	c.clamp()
	return c
}

func (c *ArcRotateCamera) clamp() {
	c.Beta = mgl32.Clamp(c.Beta, c.LowerBetaLimit, c.UpperBetaLimit)
	if c.Radius < c.LowerRadiusLimit {
		c.Radius = c.LowerRadiusLimit
	}
	if c.UpperRadiusLimit > 0 && c.Radius > c.UpperRadiusLimit {
		c.Radius = c.UpperRadiusLimit
	}
}

// Position is target + radius * (cos a sin b, cos b, sin a sin b).
func (c *ArcRotateCamera) Position() mgl32.Vec3 {
	sa, ca := math32.Sincos(c.Alpha)
	sb, cb := math32.Sincos(c.Beta)
	return c.Target.Add(mgl32.Vec3{ca * sb, cb, sa * sb}.Mul(c.Radius))
}

func (c *ArcRotateCamera) Orbit(deltaAlpha, deltaBeta float32) {
	c.Alpha += deltaAlpha
	c.Beta += deltaBeta
	c.clamp()
}

// Zoom moves the camera towards the target for positive delta.
func (c *ArcRotateCamera) Zoom(delta float32) {
	c.Radius -= delta
	c.clamp()
}

// Frame targets the centre of box and sets the radius so the sphere around
// box fits the vertical field of view. Angles are kept.
func (c *ArcRotateCamera) Frame(box AABB) {
	c.Target = box.Center()
	c.Radius = box.Size().Len() / 2 / math32.Sin(c.FOV/2)
	c.clamp()
}

func (c *ArcRotateCamera) UpdateAspectRatio(width, height float32) {
	if height > 0 {
		c.AspectRatio = width / height
	}
}

func (c *ArcRotateCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}

func (c *ArcRotateCamera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(c.FOV, c.AspectRatio, c.MinZ, c.MaxZ)
}

func (c *ArcRotateCamera) ViewProjectionMatrix() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}
