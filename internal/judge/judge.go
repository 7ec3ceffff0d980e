// Package judge classifies input timing against scripted events.
//
// Every event owns an active window [E-Pre, E+Post]. Inside it the event is visible
// and hittable; a hit is graded by the number of frame units elapsed since the event.
package judge

import (
	"fmt"
	"time"
)

// Tier is the accuracy grade of a hit.
type Tier int

const (
	TierNone Tier = iota
	TierGood
	TierGreat
	TierPerfect
)

// String returns the display name of the tier.
func (t Tier) String() string {
	switch t {
	case TierGood:
		return "Good"
	case TierGreat:
		return "Great"
	case TierPerfect:
		return "Perfect"
	default:
		return "None"
	}
}

// ParseTier converts a config name to a Tier.
func ParseTier(s string) (Tier, error) {
	switch s {
	case "good", "Good":
		return TierGood, nil
	case "great", "Great":
		return TierGreat, nil
	case "perfect", "Perfect":
		return TierPerfect, nil
	}
	return TierNone, fmt.Errorf("judge: unknown tier %q", s)
}

// Default window, in frame units at 60 Hz.
const (
	DefaultFrameRate  = 60
	DefaultPreFrames  = 28
	DefaultPostFrames = 8
)

// Window is the per-event acceptance interval.
type Window struct {
	Pre  time.Duration // how early an event becomes active
	Post time.Duration // how late an event stays active
	Unit time.Duration // one frame unit
}

// NewWindow builds a window from frame counts at the given frame rate.
func NewWindow(frameRate, preFrames, postFrames int) Window {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	unit := time.Second / time.Duration(frameRate)
	return Window{
		Pre:  time.Duration(preFrames) * unit,
		Post: time.Duration(postFrames) * unit,
		Unit: unit,
	}
}

// DefaultWindow returns the 28/8 frame window at 60 Hz (about 467ms early, 133ms late).
func DefaultWindow() Window {
	return NewWindow(DefaultFrameRate, DefaultPreFrames, DefaultPostFrames)
}

// Contains reports whether t lies inside the active window of the event at e.
func (w Window) Contains(e, t time.Duration) bool {
	return t >= e-w.Pre && t <= e+w.Post
}

// Closed reports whether the window of the event at e has fully passed at t.
func (w Window) Closed(e, t time.Duration) bool {
	return t > e+w.Post
}

// Frame returns the animation frame for time t, counted in frame units since the
// window of the event at e opened.
func (w Window) Frame(e, t time.Duration) int {
	return floorDiv(t-(e-w.Pre), w.Unit)
}

// Frames returns the window length in frame units, rounded down.
func (w Window) Frames() int {
	return floorDiv(w.Pre+w.Post, w.Unit)
}

// Bucket maps the frame range [From, To) since the event to a tier.
type Bucket struct {
	From int
	To   int
	Tier Tier
}

// DefaultBuckets returns the standard grading table. The late side decays back to
// Great after Perfect.
func DefaultBuckets() []Bucket {
	return []Bucket{
		{From: 0, To: 12, Tier: TierGood},
		{From: 12, To: 18, Tier: TierGreat},
		{From: 18, To: 32, Tier: TierPerfect},
		{From: 32, To: 40, Tier: TierGreat},
	}
}

// Judge combines the active window with the grading table.
// It holds no state; all methods are pure functions of their arguments.
type Judge struct {
	Window  Window
	Buckets []Bucket
}

// New creates a judge.
func New(w Window, buckets []Bucket) *Judge {
	return &Judge{Window: w, Buckets: buckets}
}

// Default returns a judge with the default window and grading table.
func Default() *Judge {
	return New(DefaultWindow(), DefaultBuckets())
}

// Classify grades a hit that happened since after the event.
// It reports false when the frame falls in no bucket (including early hits).
func (j *Judge) Classify(since time.Duration) (Tier, bool) {
	frame := floorDiv(since, j.Window.Unit)
	for _, b := range j.Buckets {
		if frame >= b.From && frame < b.To {
			return b.Tier, true
		}
	}
	return TierNone, false
}

// Judge grades an input at t against the event at e.
// Outside the active window there is no judgment. Inside it, early inputs are graded
// as frame 0 and inputs past the last bucket keep the last bucket's tier.
func (j *Judge) Judge(e, t time.Duration) (Tier, bool) {
	if !j.Window.Contains(e, t) {
		return TierNone, false
	}

	since := t - e
	if since < 0 {
		since = 0
	}
	if tier, ok := j.Classify(since); ok {
		return tier, true
	}
	if len(j.Buckets) == 0 {
		return TierNone, false
	}
	return j.Buckets[len(j.Buckets)-1].Tier, true
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b time.Duration) int {
	if b <= 0 {
		return 0
	}
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return int(q)
}
