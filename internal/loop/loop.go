package loop

import (
	"time"

	"github.com/ThatOtherAndrew/Tinsel/internal/control"
	"github.com/ThatOtherAndrew/Tinsel/internal/input"
	"github.com/ThatOtherAndrew/Tinsel/internal/logging"
	"github.com/ThatOtherAndrew/Tinsel/internal/models"
	"github.com/ThatOtherAndrew/Tinsel/internal/scene"
	"github.com/ThatOtherAndrew/Tinsel/internal/update"
)

// Loop ties one session to a scene adapter. Tick must be called from a
// single goroutine; landmark frames from other goroutines go through the queue.
type Loop struct {
	session *models.Session
	queue   *input.Queue
	control *control.App
	update  *update.App
	scene   scene.Adapter
	camera  *scene.Camera
	log     logging.Logger

	tree scene.Handle
	snow scene.Handle

	lastStatus string
}

func New(
	session *models.Session,
	queue *input.Queue,
	adapter scene.Adapter,
	camera *scene.Camera,
	logger logging.Logger,
) *Loop {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if camera == nil {
		camera = scene.NewCamera(1)
	}

	l := &Loop{
		session: session,
		queue:   queue,
		control: control.New(session, logger),
		update:  update.New(session),
		scene:   adapter,
		camera:  camera,
		log:     logger,
	}

	l.tree = adapter.CreatePoints(session.Tree, scene.TreeStyle)
	l.snow = adapter.CreatePoints(models.ParticleBuffer{Positions: session.Snow.Positions}, scene.SnowStyle)
	return l
}

// Tick applies queued landmark frames, advances the simulation to now and
// renders one frame.
func (l *Loop) Tick(now time.Duration) {
	if l.queue != nil {
		for _, f := range l.queue.Drain() {
			l.HandleFrame(f.Landmarks, now)
		}
	}

	l.update.Step(now)

	t := l.session.Transform
	l.scene.SetRotationY(l.tree, t.RotationY)
	l.scene.SetScale(l.tree, t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	l.scene.SetOpacity(l.tree, t.Opacity)
	l.scene.UpdatePositions(l.snow, l.session.Snow.Positions)
	l.scene.Render(l.camera)
}

// HandleFrame applies one landmark frame immediately.
func (l *Loop) HandleFrame(lm []models.Landmark, now time.Duration) {
	wasLoaded := l.session.Loaded
	l.control.HandleLandmarks(lm, now)
	if !wasLoaded {
		l.log.Infof("Hand tracking ready")
	}
	if l.session.Status != l.lastStatus {
		l.lastStatus = l.session.Status
		l.log.Infof("%s", l.session.Status)
	}
}

// Resize is the host's hook for window size changes.
func (l *Loop) Resize(width, height int) {
	l.scene.SetViewport(width, height)
	if height > 0 {
		l.camera.SetAspect(float32(width) / float32(height))
	}
}

func (l *Loop) SetPointSizes(tree, snow float32) {
	l.scene.SetPointSize(l.tree, tree)
	l.scene.SetPointSize(l.snow, snow)
}

func (l *Loop) Session() *models.Session {
	return l.session
}

func (l *Loop) Camera() *scene.Camera {
	return l.camera
}
