package gestures

import (
	"math"

	"github.com/ThatOtherAndrew/Tinsel/internal/models"
)

// MediaPipe hand landmark indices.
const (
	Wrist     = 0
	ThumbTip  = 4
	IndexMCP  = 5
	IndexTip  = 8
	MiddleMCP = 9
	MiddleTip = 12
	RingMCP   = 13
	RingTip   = 16

	HandLandmarkCount = 21
)

// PinchRatio is the fraction of the index finger's proximal length that the
// thumb-to-index gap must fall under to count as a pinch.
const PinchRatio = 0.6

type Result struct {
	Gesture   models.GestureState
	PinchTipX float64
	PinchDist float64
	RefDist   float64
}

// Classify maps one frame of hand landmarks to a gesture. Frames with fewer
// than HandLandmarkCount points are treated as no hand. Non-finite
// coordinates are not rejected; they fall through the comparisons and
// usually land on Open.
func Classify(lm []models.Landmark) Result {
	if len(lm) < HandLandmarkCount {
		return Result{Gesture: models.GestureNone}
	}

	refDist := distance(lm[IndexTip], lm[IndexMCP])
	pinchDist := distance(lm[ThumbTip], lm[IndexTip])
	r := Result{PinchDist: pinchDist, RefDist: refDist}

	if pinchDist < refDist*PinchRatio {
		r.Gesture = models.GesturePinching
		r.PinchTipX = lm[IndexTip].X
		return r
	}

	if IsFist(lm) {
		r.Gesture = models.GestureFist
	} else {
		r.Gesture = models.GestureOpen
	}
	return r
}

// IsFist reports whether the middle and ring fingertips sit below their
// knuckles in image space (y grows downward).
func IsFist(lm []models.Landmark) bool {
	if len(lm) < HandLandmarkCount {
		return false
	}
	return lm[MiddleTip].Y > lm[MiddleMCP].Y && lm[RingTip].Y > lm[RingMCP].Y
}

func distance(a, b models.Landmark) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
