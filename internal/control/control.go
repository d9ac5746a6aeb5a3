package control

import (
	"time"

	gestures "github.com/ThatOtherAndrew/Tinsel/internal/gesture"
	"github.com/ThatOtherAndrew/Tinsel/internal/logging"
	"github.com/ThatOtherAndrew/Tinsel/internal/models"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	PinchRotationGain = 10.0
	PinchInertiaGain  = 0.3

	ContractedExplode = 0.0
	ExpandedExplode   = 1.3
	ExplodeDuration   = 800 * time.Millisecond
)

const (
	StatusPinch = "pinched: slide left/right"
	StatusFist  = "fist: contracted"
	StatusOpen  = "open: expanded"
)

var (
	StatusColorPinch = mgl32.Vec3{1, 0.84, 0}       // #ffd700
	StatusColorFist  = mgl32.Vec3{1, 1, 1}          // #fff
	StatusColorOpen  = mgl32.Vec3{0.83, 0.69, 0.22} // #d4af37
)

type App struct {
	app *models.Session
	log logging.Logger
}

func New(app *models.Session, logger logging.Logger) *App {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &App{app: app, log: logger}
}

// HandleLandmarks classifies one landmark frame and applies it.
func (a *App) HandleLandmarks(lm []models.Landmark, now time.Duration) gestures.Result {
	r := gestures.Classify(lm)
	a.Handle(r, now)
	return r
}

// Handle applies one classified frame to the interaction state.
func (a *App) Handle(r gestures.Result, now time.Duration) {
	s := &a.app.Interaction
	a.app.Loaded = true

	if r.Gesture != a.app.Gesture {
		a.log.Debugf("gesture %s -> %s", a.app.Gesture, r.Gesture)
	}
	a.app.Gesture = r.Gesture

	if r.Gesture == models.GesturePinching {
		if !s.IsPinching {
			s.IsPinching = true
			s.PinchStartX = r.PinchTipX
			s.TreeBaseRotationY = s.CurrentRotationY
		}
		deltaX := r.PinchTipX - s.PinchStartX
		s.CurrentRotationY = s.TreeBaseRotationY + deltaX*PinchRotationGain
		s.RotationVelocity = deltaX * PinchInertiaGain
		a.setStatus(StatusPinch, StatusColorPinch)
		return
	}

	// Releasing leaves RotationVelocity in place; update decays it each frame.
	s.IsPinching = false

	switch r.Gesture {
	case models.GestureFist:
		a.setStatus(StatusFist, StatusColorFist)
		a.retargetExplode(ContractedExplode, now)
	case models.GestureOpen:
		a.setStatus(StatusOpen, StatusColorOpen)
		a.retargetExplode(ExpandedExplode, now)
	}
}

func (a *App) retargetExplode(target float64, now time.Duration) {
	if a.app.Explode.Retarget(a.app.Interaction.ExplodeValue, target, now, ExplodeDuration) {
		a.log.Debugf("explode %.2f -> %.2f", a.app.Interaction.ExplodeValue, target)
	}
}

func (a *App) setStatus(text string, color mgl32.Vec3) {
	a.app.Status = text
	a.app.StatusColor = color
}
