package loop

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/ThatOtherAndrew/Tinsel/internal/control"
	gestures "github.com/ThatOtherAndrew/Tinsel/internal/gesture"
	"github.com/ThatOtherAndrew/Tinsel/internal/input"
	"github.com/ThatOtherAndrew/Tinsel/internal/models"
	"github.com/ThatOtherAndrew/Tinsel/internal/scene"
	"github.com/ThatOtherAndrew/Tinsel/internal/spawn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoop(t *testing.T) (*Loop, *scene.Recorder, *input.Queue) {
	t.Helper()
	session := spawn.New(rand.NewPCG(5, 6)).NewSession(300, 1500)
	rec := scene.NewRecorder()
	q := input.NewQueue(8)
	l := New(session, q, rec, scene.NewCamera(1024.0/768.0), nil)
	require.Len(t, rec.Objects, 2)
	return l, rec, q
}

func TestNewCreatesTreeAndSnow(t *testing.T) {
	_, rec, _ := newLoop(t)
	tree, snow := rec.Objects[0], rec.Objects[1]

	assert.Equal(t, 300, tree.Count)
	assert.Equal(t, scene.TreeStyle, tree.Style)
	assert.Equal(t, float32(0.85), tree.Opacity)
	assert.Equal(t, 1500, snow.Count)
	assert.Equal(t, scene.SnowStyle, snow.Style)
}

func TestTickCopiesSimulationIntoScene(t *testing.T) {
	l, rec, _ := newLoop(t)
	l.Session().Interaction.ExplodeValue = 0.5

	l.Tick(16 * time.Millisecond)

	tree := rec.Objects[0]
	assert.InDelta(t, 1.4, tree.Scale.X(), 1e-6)
	assert.InDelta(t, 0.9, tree.Scale.Y(), 1e-6)
	assert.InDelta(t, 1.4, tree.Scale.Z(), 1e-6)
	assert.InDelta(t, 0.75, tree.Opacity, 1e-6)
	assert.InDelta(t, 0.005, tree.RotationY, 1e-7)
	assert.Equal(t, 1, rec.Renders)
	assert.Equal(t, 1, rec.Objects[1].Uploads)
}

func TestTickWrapsSnowInScene(t *testing.T) {
	l, rec, _ := newLoop(t)
	l.Session().Snow.Positions[1] = -25

	l.Tick(0)
	assert.Equal(t, float32(20), rec.Objects[1].Positions[1])
}

func TestTickDrainsQueueBeforeStepping(t *testing.T) {
	l, rec, q := newLoop(t)

	require.NoError(t, q.Push(input.Frame{Landmarks: gestures.Pose(models.GesturePinching, 0.3)}))
	l.Tick(0)
	s := l.Session()
	assert.True(t, s.Interaction.IsPinching)
	assert.True(t, s.Loaded)
	assert.Equal(t, control.StatusPinch, s.Status)
	rot := rec.Objects[0].RotationY

	require.NoError(t, q.Push(input.Frame{Landmarks: gestures.Pose(models.GesturePinching, 0.4)}))
	l.Tick(time.Millisecond)
	assert.InDelta(t, float64(rot)+0.1*control.PinchRotationGain, float64(rec.Objects[0].RotationY), 1e-5)
	assert.Zero(t, q.Len())
}

func TestTickAppliesQueuedFramesInOrder(t *testing.T) {
	l, _, q := newLoop(t)
	require.NoError(t, q.Push(input.Frame{Landmarks: gestures.Pose(models.GestureOpen, 0.5)}))
	require.NoError(t, q.Push(input.Frame{Landmarks: gestures.Pose(models.GestureFist, 0.5)}))

	l.Tick(0)
	assert.Equal(t, control.StatusFist, l.Session().Status)
	assert.Equal(t, control.ContractedExplode, l.Session().Explode.To)
}

func TestOpenHandExpandsOverTime(t *testing.T) {
	l, rec, _ := newLoop(t)
	l.HandleFrame(gestures.Pose(models.GestureOpen, 0.5), 0)

	for ms := 0; ms <= 1000; ms += 16 {
		l.Tick(time.Duration(ms) * time.Millisecond)
	}
	assert.InDelta(t, control.ExpandedExplode, l.Session().Interaction.ExplodeValue, 1e-9)
	assert.InDelta(t, 1+1.3*0.8, rec.Objects[0].Scale.X(), 1e-5)
}

func TestEmptyFrameIsHarmless(t *testing.T) {
	l, _, q := newLoop(t)
	require.NoError(t, q.Push(input.Frame{}))
	assert.NotPanics(t, func() { l.Tick(0) })
	assert.True(t, l.Session().Loaded)
	assert.False(t, l.Session().Interaction.IsPinching)
}

func TestResize(t *testing.T) {
	l, rec, _ := newLoop(t)

	l.Resize(800, 600)
	assert.Equal(t, 800, rec.Width)
	assert.Equal(t, 600, rec.Height)
	assert.InDelta(t, 800.0/600.0, l.Camera().Aspect, 1e-6)

	l.Resize(0, 0)
	assert.InDelta(t, 800.0/600.0, l.Camera().Aspect, 1e-6)
}

func TestSetPointSizes(t *testing.T) {
	l, rec, _ := newLoop(t)
	l.SetPointSizes(0.1, 0.2)
	assert.Equal(t, float32(0.1), rec.Objects[0].Style.Size)
	assert.Equal(t, float32(0.2), rec.Objects[1].Style.Size)
}

func TestNilQueue(t *testing.T) {
	session := spawn.New(rand.NewPCG(1, 1)).NewSession(0, 0)
	rec := scene.NewRecorder()
	l := New(session, nil, rec, nil, nil)
	assert.NotPanics(t, func() { l.Tick(0) })
	assert.Equal(t, 1, rec.Renders)
}
