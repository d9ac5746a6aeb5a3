package scene

import (
	"github.com/ThatOtherAndrew/Tinsel/internal/models"
	"github.com/go-gl/mathgl/mgl32"
)

type Handle int

// PointStyle is the material of a points object.
type PointStyle struct {
	Size            float32
	Color           mgl32.Vec3 // used when VertexColors is false
	VertexColors    bool
	Opacity         float32
	Additive        bool
	SizeAttenuation bool
}

var TreeStyle = PointStyle{
	Size:            0.045,
	VertexColors:    true,
	Opacity:         0.85,
	Additive:        true,
	SizeAttenuation: true,
}

var SnowStyle = PointStyle{
	Size:            0.06,
	Color:           mgl32.Vec3{1, 1, 1},
	Opacity:         0.4,
	Additive:        true,
	SizeAttenuation: true,
}

// Fog is exponential-squared distance fog.
type Fog struct {
	Color   mgl32.Vec3
	Density float32
}

var DefaultFog = Fog{Color: mgl32.Vec3{0x01 / 255.0, 0x05 / 255.0, 0x01 / 255.0}, Density: 0.015}

// Adapter owns the graphics objects. The simulation never touches them
// directly; the frame loop copies its outputs across once per frame.
type Adapter interface {
	CreatePoints(buf models.ParticleBuffer, style PointStyle) Handle
	SetRotationY(h Handle, value float32)
	SetScale(h Handle, x, y, z float32)
	SetOpacity(h Handle, value float32)
	UpdatePositions(h Handle, positions []float32)
	SetPointSize(h Handle, size float32)
	SetViewport(width, height int)
	Render(camera *Camera)
}
