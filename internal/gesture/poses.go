package gestures

import "github.com/ThatOtherAndrew/Tinsel/internal/models"

// Pose builds a plausible 21-point right hand in the given gesture, laid out
// so the index fingertip sits at tipX. GestureNone returns nil (no hand).
// Used by the headless simulator and by tests.
func Pose(g models.GestureState, tipX float64) []models.Landmark {
	if g == models.GestureNone {
		return nil
	}

	lm := make([]models.Landmark, HandLandmarkCount)
	x := tipX + 0.05

	lm[Wrist] = models.Landmark{X: x, Y: 0.85}
	fingerXs := [4]float64{x - 0.05, x, x + 0.04, x + 0.08}

	curled := g == models.GestureFist
	for f := range 4 {
		base := IndexMCP + f*4
		fx := fingerXs[f]
		lm[base] = models.Landmark{X: fx, Y: 0.6}
		if curled {
			lm[base+1] = models.Landmark{X: fx, Y: 0.55}
			lm[base+2] = models.Landmark{X: fx, Y: 0.6}
			lm[base+3] = models.Landmark{X: fx, Y: 0.65}
		} else {
			lm[base+1] = models.Landmark{X: fx, Y: 0.52}
			lm[base+2] = models.Landmark{X: fx, Y: 0.44}
			lm[base+3] = models.Landmark{X: fx, Y: 0.35}
		}
	}
	lm[IndexTip].X = tipX

	lm[1] = models.Landmark{X: x - 0.08, Y: 0.78}
	lm[2] = models.Landmark{X: x - 0.12, Y: 0.72}
	lm[3] = models.Landmark{X: x - 0.15, Y: 0.66}
	switch g {
	case models.GesturePinching:
		lm[ThumbTip] = models.Landmark{X: tipX + 0.01, Y: lm[IndexTip].Y + 0.01}
	case models.GestureFist:
		lm[ThumbTip] = models.Landmark{X: x - 0.15, Y: 0.62}
	default:
		lm[ThumbTip] = models.Landmark{X: x - 0.2, Y: 0.58}
	}

	return lm
}
