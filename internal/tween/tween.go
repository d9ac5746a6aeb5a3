package tween

import "time"

// EaseOutQuad is the power2 ease-out curve, 1-(1-t)^2, with t clamped to [0,1].
func EaseOutQuad(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return 1 - (1-t)*(1-t)
}

// Tween moves a value from From to To over Duration starting at Start.
// The zero Tween is idle and samples as 0.
type Tween struct {
	From     float64
	To       float64
	Start    time.Duration
	Duration time.Duration
	Active   bool
}

// Retarget starts a new tween from current toward to. A tween already heading
// to the same target is left alone so a held gesture still finishes on time.
func (tw *Tween) Retarget(current, to float64, now, duration time.Duration) bool {
	if tw.Active && tw.To == to {
		return false
	}
	tw.From = current
	tw.To = to
	tw.Start = now
	tw.Duration = duration
	tw.Active = true
	return true
}

// Sample returns the eased value at now.
func (tw *Tween) Sample(now time.Duration) float64 {
	if !tw.Active || tw.Duration <= 0 {
		return tw.To
	}
	t := float64(now-tw.Start) / float64(tw.Duration)
	return tw.From + (tw.To-tw.From)*EaseOutQuad(t)
}

func (tw *Tween) Done(now time.Duration) bool {
	return !tw.Active || now-tw.Start >= tw.Duration
}

// Stop freezes the tween; Sample keeps returning the target.
func (tw *Tween) Stop() {
	tw.Active = false
}
