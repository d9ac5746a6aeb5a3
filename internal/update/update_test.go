package update

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/ThatOtherAndrew/Tinsel/internal/models"
	"github.com/ThatOtherAndrew/Tinsel/internal/spawn"
	"github.com/ThatOtherAndrew/Tinsel/internal/tween"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(snow int) *models.Session {
	gen := spawn.New(rand.NewPCG(3, 4))
	return &models.Session{
		Tree: gen.GenerateTree(100),
		Snow: gen.GenerateSnow(snow),
	}
}

func TestSnowFallsEachStep(t *testing.T) {
	s := newSession(1500)
	s.Snow.Positions[1] = 0
	u := New(s)

	prev := s.Snow.Positions[1]
	for frame := range 50 {
		u.Step(time.Duration(frame) * 16 * time.Millisecond)
		y := s.Snow.Positions[1]
		require.Less(t, y, prev, "frame %d", frame)
		prev = y
	}
}

func TestSnowWrapsToCeiling(t *testing.T) {
	s := newSession(1500)
	s.Snow.Positions[1] = -25
	New(s).Step(0)
	assert.Equal(t, float32(20), s.Snow.Positions[1])
}

func TestSnowWrapsAfterCrossingFloor(t *testing.T) {
	s := newSession(1)
	s.Snow.Positions[1] = -19.99
	s.Snow.Speeds[0] = 0.05
	u := New(s)

	u.Step(0)
	assert.Equal(t, float32(SnowCeiling), s.Snow.Positions[1])
	u.Step(0)
	assert.Equal(t, float32(SnowCeiling)-0.05, s.Snow.Positions[1])
}

func TestSnowSwayUsesIndexPhase(t *testing.T) {
	s := &models.Session{Snow: models.SnowField{
		Positions: make([]float32, 6),
		Speeds:    []float32{0.02, 0.02},
	}}
	New(s).Step(0)

	assert.InDelta(t, math.Sin(0)*SwayAmplitude, float64(s.Snow.Positions[0]), 1e-9)
	assert.InDelta(t, math.Sin(1)*SwayAmplitude, float64(s.Snow.Positions[3]), 1e-9)
}

func TestSnowSpeedsNeverMutated(t *testing.T) {
	s := newSession(200)
	before := append([]float32(nil), s.Snow.Speeds...)
	u := New(s)
	for i := range 100 {
		u.Step(time.Duration(i) * time.Millisecond)
	}
	assert.Equal(t, before, s.Snow.Speeds)
}

func TestIdleSpinIncreasesRotation(t *testing.T) {
	s := newSession(0)
	u := New(s)
	prev := s.Interaction.CurrentRotationY
	for range 10 {
		u.Step(0)
		require.Greater(t, s.Interaction.CurrentRotationY, prev)
		prev = s.Interaction.CurrentRotationY
	}
	assert.InDelta(t, 10*IdleSpin, s.Interaction.CurrentRotationY, 1e-12)
}

func TestInertiaDecays(t *testing.T) {
	s := newSession(0)
	s.Interaction.RotationVelocity = 0.1
	u := New(s)

	u.Step(0)
	assert.InDelta(t, IdleSpin+0.1, s.Interaction.CurrentRotationY, 1e-12)
	assert.InDelta(t, 0.1*InertiaDecay, s.Interaction.RotationVelocity, 1e-12)

	for range 500 {
		u.Step(0)
	}
	assert.Less(t, s.Interaction.RotationVelocity, 1e-12)
	assert.Greater(t, s.Interaction.RotationVelocity, 0.0)
}

func TestPinchingHoldsRotation(t *testing.T) {
	s := newSession(0)
	s.Interaction = models.InteractionState{
		IsPinching:        true,
		TreeBaseRotationY: 1,
		PinchStartX:       0.4,
		CurrentRotationY:  1 + (0.5-0.4)*10,
		RotationVelocity:  0.03,
	}
	New(s).Step(0)
	assert.InDelta(t, 2.0, s.Interaction.CurrentRotationY, 1e-12)
	assert.InDelta(t, 0.03, s.Interaction.RotationVelocity, 1e-12)
}

func TestTreeTransformScenario(t *testing.T) {
	tr := TreeTransform(models.InteractionState{ExplodeValue: 0.5})
	assert.InDelta(t, 1.4, tr.Scale.X(), 1e-6)
	assert.InDelta(t, 0.9, tr.Scale.Y(), 1e-6)
	assert.InDelta(t, 1.4, tr.Scale.Z(), 1e-6)
	assert.InDelta(t, 0.75, tr.Opacity, 1e-6)
}

func TestTreeTransformUnclamped(t *testing.T) {
	tests := []struct {
		explode       float64
		h, v, opacity float64
	}{
		{0, 1, 1, 0.9},
		{1.3, 2.04, 0.74, 0.51},
		{-1, 0.2, 1.2, 1.2},
		{10, 9, -1, -2.1},
	}
	for _, tt := range tests {
		var tr models.TreeTransform
		require.NotPanics(t, func() {
			tr = TreeTransform(models.InteractionState{ExplodeValue: tt.explode})
		})
		assert.InDelta(t, tt.h, tr.Scale.X(), 1e-5, "explode %v", tt.explode)
		assert.InDelta(t, tt.v, tr.Scale.Y(), 1e-5, "explode %v", tt.explode)
		assert.InDelta(t, tt.opacity, tr.Opacity, 1e-5, "explode %v", tt.explode)
	}
}

func TestStepSamplesExplodeTween(t *testing.T) {
	s := newSession(0)
	s.Explode.Retarget(0, 1.3, 0, 800*time.Millisecond)
	u := New(s)

	u.Step(400 * time.Millisecond)
	assert.InDelta(t, 1.3*tween.EaseOutQuad(0.5), s.Interaction.ExplodeValue, 1e-9)
	assert.True(t, s.Explode.Active)

	u.Step(time.Second)
	assert.InDelta(t, 1.3, s.Interaction.ExplodeValue, 1e-12)
	assert.False(t, s.Explode.Active)

	s.Interaction.ExplodeValue = 0.5
	u.Step(2 * time.Second)
	assert.InDelta(t, 0.5, s.Interaction.ExplodeValue, 1e-12)
	assert.InDelta(t, 1.4, s.Transform.Scale.X(), 1e-6)
}

func TestStepCountsFrames(t *testing.T) {
	s := newSession(0)
	u := New(s)
	u.Step(0)
	u.Step(0)
	assert.Equal(t, uint64(2), s.Frame)
}
