package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Camera struct {
	FovY   float32 // degrees
	Aspect float32
	Near   float32
	Far    float32
	Eye    mgl32.Vec3
	Target mgl32.Vec3
}

func NewCamera(aspect float32) *Camera {
	c := &Camera{
		FovY:   60,
		Aspect: 1,
		Near:   0.1,
		Far:    1000,
		Eye:    mgl32.Vec3{0, 2, 18},
		Target: mgl32.Vec3{0, 2, 0},
	}
	c.SetAspect(aspect)
	return c
}

// SetAspect ignores ratios that are zero, negative or not finite, which is
// what a minimised window reports.
func (c *Camera) SetAspect(ratio float32) {
	r := float64(ratio)
	if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return
	}
	c.Aspect = ratio
}

func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, mgl32.Vec3{0, 1, 0})
}

// Model builds the object matrix for a points object: scale first, then the
// rotation about Y.
func Model(rotationY float32, scale mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3DY(rotationY).Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}
