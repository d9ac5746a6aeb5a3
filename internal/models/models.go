package models

import (
	"time"

	"github.com/ThatOtherAndrew/Tinsel/internal/tween"
	"github.com/go-gl/mathgl/mgl32"
)

// Landmark is one hand keypoint in normalised image coordinates, as
// reported by the MediaPipe hands model.
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ParticleBuffer holds flat xyz positions and a parallel rgb colour slice.
// Particle i lives at [3i, 3i+1, 3i+2] in both.
type ParticleBuffer struct {
	Positions []float32
	Colors    []float32
}

func NewParticleBuffer(count int) ParticleBuffer {
	if count < 0 {
		count = 0
	}
	return ParticleBuffer{
		Positions: make([]float32, count*3),
		Colors:    make([]float32, count*3),
	}
}

func (b ParticleBuffer) Len() int {
	return len(b.Positions) / 3
}

func (b ParticleBuffer) Position(i int) mgl32.Vec3 {
	return mgl32.Vec3{b.Positions[i*3], b.Positions[i*3+1], b.Positions[i*3+2]}
}

func (b ParticleBuffer) Color(i int) mgl32.Vec3 {
	return mgl32.Vec3{b.Colors[i*3], b.Colors[i*3+1], b.Colors[i*3+2]}
}

func (b ParticleBuffer) SetPosition(i int, p mgl32.Vec3) {
	b.Positions[i*3], b.Positions[i*3+1], b.Positions[i*3+2] = p[0], p[1], p[2]
}

func (b ParticleBuffer) SetColor(i int, c mgl32.Vec3) {
	b.Colors[i*3], b.Colors[i*3+1], b.Colors[i*3+2] = c[0], c[1], c[2]
}

// SnowField is the falling background. Speeds are fixed at creation.
type SnowField struct {
	Positions []float32
	Speeds    []float32
}

func (s SnowField) Len() int {
	return len(s.Speeds)
}

type GestureState int

const (
	GestureNone GestureState = iota
	GesturePinching
	GestureFist
	GestureOpen
)

func (g GestureState) String() string {
	switch g {
	case GesturePinching:
		return "pinching"
	case GestureFist:
		return "fist"
	case GestureOpen:
		return "open"
	default:
		return "none"
	}
}

type InteractionState struct {
	IsPinching        bool
	PinchStartX       float64
	TreeBaseRotationY float64
	RotationVelocity  float64
	CurrentRotationY  float64
	ExplodeValue      float64
}

// TreeTransform is what the scene adapter copies onto the tree object each frame.
type TreeTransform struct {
	RotationY float32
	Scale     mgl32.Vec3
	Opacity   float32
}

type Session struct {
	Tree        ParticleBuffer
	Snow        SnowField
	Interaction InteractionState
	Explode     tween.Tween
	Transform   TreeTransform
	Gesture     GestureState
	Status      string
	StatusColor mgl32.Vec3
	Loaded      bool
	StartTime   time.Time
	Frame       uint64
}
