package gestures

import (
	"math"
	"testing"

	"github.com/ThatOtherAndrew/Tinsel/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassifyPoses(t *testing.T) {
	tests := []struct {
		name string
		pose models.GestureState
		want models.GestureState
	}{
		{"pinch", models.GesturePinching, models.GesturePinching},
		{"fist", models.GestureFist, models.GestureFist},
		{"open", models.GestureOpen, models.GestureOpen},
		{"no hand", models.GestureNone, models.GestureNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(Pose(tt.pose, 0.4))
			assert.Equal(t, tt.want, got.Gesture)
		})
	}
}

func TestClassifyPinchReportsTipX(t *testing.T) {
	r := Classify(Pose(models.GesturePinching, 0.37))
	assert.Equal(t, models.GesturePinching, r.Gesture)
	assert.InDelta(t, 0.37, r.PinchTipX, 1e-12)
	assert.Less(t, r.PinchDist, r.RefDist*PinchRatio)
}

func TestClassifyPinchThreshold(t *testing.T) {
	lm := Pose(models.GestureOpen, 0.5)
	lm[IndexMCP] = models.Landmark{X: 0.5, Y: 0.6}
	lm[IndexTip] = models.Landmark{X: 0.5, Y: 0.4} // refDist 0.2, threshold 0.12

	lm[ThumbTip] = models.Landmark{X: 0.5 + 0.119, Y: 0.4}
	assert.Equal(t, models.GesturePinching, Classify(lm).Gesture)

	lm[ThumbTip] = models.Landmark{X: 0.5 + 0.121, Y: 0.4}
	assert.NotEqual(t, models.GesturePinching, Classify(lm).Gesture)
}

func TestClassifyPinchWinsOverFist(t *testing.T) {
	lm := Pose(models.GestureFist, 0.5)
	lm[ThumbTip] = lm[IndexTip]
	assert.Equal(t, models.GesturePinching, Classify(lm).Gesture)
}

func TestClassifyFistNeedsBothFingers(t *testing.T) {
	lm := Pose(models.GestureFist, 0.5)
	lm[RingTip].Y = lm[RingMCP].Y - 0.1
	assert.Equal(t, models.GestureOpen, Classify(lm).Gesture)
}

func TestClassifyEmptyAndShortInput(t *testing.T) {
	assert.Equal(t, models.GestureNone, Classify(nil).Gesture)
	assert.Equal(t, models.GestureNone, Classify([]models.Landmark{}).Gesture)
	short := make([]models.Landmark, 8)
	assert.Equal(t, models.GestureNone, Classify(short).Gesture)
	assert.False(t, IsFist(short))
}

func TestClassifyNonFiniteDoesNotPanic(t *testing.T) {
	lm := make([]models.Landmark, HandLandmarkCount)
	for i := range lm {
		switch i % 3 {
		case 0:
			lm[i] = models.Landmark{X: math.NaN(), Y: math.Inf(1)}
		case 1:
			lm[i] = models.Landmark{X: math.Inf(-1), Y: math.NaN()}
		default:
			lm[i] = models.Landmark{X: 0.5, Y: 0.5}
		}
	}
	assert.NotPanics(t, func() {
		r := Classify(lm)
		assert.NotEqual(t, models.GesturePinching, r.Gesture)
	})
}

func TestGestureStateString(t *testing.T) {
	assert.Equal(t, "pinching", models.GesturePinching.String())
	assert.Equal(t, "fist", models.GestureFist.String())
	assert.Equal(t, "open", models.GestureOpen.String())
	assert.Equal(t, "none", models.GestureNone.String())
}
