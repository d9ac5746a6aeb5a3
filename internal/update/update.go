package update

import (
	"math"
	"time"

	"github.com/ThatOtherAndrew/Tinsel/internal/models"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	IdleSpin     = 0.005
	InertiaDecay = 0.94

	SnowFloor     = -20
	SnowCeiling   = 20
	SwayAmplitude = 0.005

	explodeWiden   = 0.8
	explodeFlatten = 0.2
	baseOpacity    = 0.9
	explodeFade    = 0.3
)

type App struct {
	app *models.Session
}

func New(app *models.Session) *App {
	return &App{app: app}
}

// Step advances the session by one frame. now is the time since the session
// started; it drives the snow sway phase and the explode tween.
func (a *App) Step(now time.Duration) {
	a.UpdateSnow(now)
	a.UpdateTree(now)
	a.app.Frame++
}

func (a *App) UpdateSnow(now time.Duration) {
	pos := a.app.Snow.Positions
	speeds := a.app.Snow.Speeds
	n := min(len(speeds), len(pos)/3)

	// Sway phase is offset by index, not position, so neighbours drift apart.
	phase := now.Seconds()
	for i := range n {
		pos[i*3+1] -= speeds[i]
		pos[i*3] += float32(math.Sin(phase+float64(i)) * SwayAmplitude)
		if pos[i*3+1] < SnowFloor {
			pos[i*3+1] = SnowCeiling
		}
	}
}

func (a *App) UpdateTree(now time.Duration) {
	s := &a.app.Interaction

	if !s.IsPinching {
		s.CurrentRotationY += IdleSpin + s.RotationVelocity
		s.RotationVelocity *= InertiaDecay
	}

	if a.app.Explode.Active {
		s.ExplodeValue = a.app.Explode.Sample(now)
		if a.app.Explode.Done(now) {
			a.app.Explode.Stop()
		}
	}

	a.app.Transform = TreeTransform(*s)
}

// TreeTransform widens and flattens the tree as it explodes and fades it out.
// ExplodeValue is not clamped; values outside [0, 1.3] give proportionally
// odd scales and opacities.
func TreeTransform(s models.InteractionState) models.TreeTransform {
	e := s.ExplodeValue
	h := 1 + e*explodeWiden
	v := 1 - e*explodeFlatten
	return models.TreeTransform{
		RotationY: float32(s.CurrentRotationY),
		Scale:     mgl32.Vec3{float32(h), float32(v), float32(h)},
		Opacity:   float32(baseOpacity - e*explodeFade),
	}
}
