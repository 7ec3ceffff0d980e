// Package lane implements the per-lane button state machine: which scripted prompt
// is visible, which one a press lands on, and what the lane shows as a result.
package lane

import (
	"time"

	"github.com/vovakirdan/clonebeat/internal/core"
	"github.com/vovakirdan/clonebeat/internal/judge"
)

// State is the judgment/animation state of a lane.
type State int

const (
	StateIdle State = iota
	StateArmed
	StateMiss
	StateGood
	StateGreat
	StatePerfect
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateArmed:
		return "Armed"
	case StateMiss:
		return "Miss"
	case StateGood:
		return "Good"
	case StateGreat:
		return "Great"
	case StatePerfect:
		return "Perfect"
	default:
		return "Unknown"
	}
}

// Judged reports whether the state is the outcome of a prompt.
func (s State) Judged() bool {
	return s >= StateMiss
}

// StateForTier maps a hit tier to its lane state.
func StateForTier(t judge.Tier) State {
	switch t {
	case judge.TierGood:
		return StateGood
	case judge.TierGreat:
		return StateGreat
	case judge.TierPerfect:
		return StatePerfect
	default:
		return StateIdle
	}
}

// Drawer draws frame N of the lane sprite sheet at a lane's fixed position.
// Frame 0 is the idle/blank frame.
type Drawer interface {
	DrawFrame(lane, frame int)
}

// Result is the outcome of one scripted prompt.
type Result struct {
	Lane   int
	Offset time.Duration // scripted time of the prompt
	At     time.Duration // time of the press; zero for a miss
	Tier   judge.Tier    // TierNone for a miss
}

// Missed reports whether the prompt closed without a press.
func (r Result) Missed() bool {
	return r.Tier == judge.TierNone
}

// Delta returns how late the press was; negative when early.
func (r Result) Delta() time.Duration {
	return r.At - r.Offset
}

// Button is the run-time state of one lane.
// Offsets stay in the list once judged; the judged flags mark them consumed.
type Button struct {
	id      int
	rect    core.Rect
	judge   *judge.Judge
	frames  int
	offsets []time.Duration
	judged  []bool
	state   State
}

// New creates a lane with its sorted scripted offsets in milliseconds.
// frames is the size of the sprite sheet; drawn frames are clamped to it.
func New(id int, rect core.Rect, offsets []int, j *judge.Judge, frames int) *Button {
	b := &Button{
		id:      id,
		rect:    rect,
		judge:   j,
		frames:  frames,
		offsets: make([]time.Duration, len(offsets)),
		judged:  make([]bool, len(offsets)),
	}
	for i, o := range offsets {
		b.offsets[i] = time.Duration(o) * time.Millisecond
	}
	return b
}

// ID returns the lane index.
func (b *Button) ID() int {
	return b.id
}

// Rect returns the lane's screen area.
func (b *Button) Rect() core.Rect {
	return b.rect
}

// State returns the current state.
func (b *Button) State() State {
	return b.state
}

// Pending returns how many prompts have not been judged yet.
func (b *Button) Pending() int {
	n := 0
	for _, done := range b.judged {
		if !done {
			n++
		}
	}
	return n
}

// Hit judges a press at t against the first unjudged prompt whose window contains t.
// A press with no active prompt has no effect.
func (b *Button) Hit(t time.Duration) (Result, bool) {
	for i, o := range b.offsets {
		if b.judged[i] {
			continue
		}
		tier, ok := b.judge.Judge(o, t)
		if !ok {
			continue
		}
		b.judged[i] = true
		b.state = StateForTier(tier)
		return Result{Lane: b.id, Offset: o, At: t, Tier: tier}, true
	}
	return Result{}, false
}

// Advance moves the lane to time t: prompts whose window closed without a press become
// misses, and an unjudged prompt entering its window arms the lane.
// It returns the misses recorded by this call.
func (b *Button) Advance(t time.Duration) []Result {
	var missed []Result
	armed := false

	for i, o := range b.offsets {
		if b.judged[i] {
			continue
		}
		switch {
		case b.judge.Window.Closed(o, t):
			b.judged[i] = true
			missed = append(missed, Result{Lane: b.id, Offset: o})
		case b.judge.Window.Contains(o, t):
			armed = true
		}
	}

	if len(missed) > 0 {
		b.state = StateMiss
	}
	if armed {
		b.state = StateArmed
	}
	return missed
}

// Frame returns the sprite frame to show at t: the progress through the window of the
// first prompt active at t, or 0 when none is active.
func (b *Button) Frame(t time.Duration) int {
	for _, o := range b.offsets {
		if b.judge.Window.Contains(o, t) {
			frame := b.judge.Window.Frame(o, t)
			if b.frames > 0 {
				frame = core.Clamp(frame, 0, b.frames-1)
			}
			return frame
		}
	}
	return 0
}

// Render requests the frame for time t. It does not change the lane.
func (b *Button) Render(t time.Duration, d Drawer) {
	d.DrawFrame(b.id, b.Frame(t))
}

// Reset returns the lane to its state at creation.
func (b *Button) Reset() {
	for i := range b.judged {
		b.judged[i] = false
	}
	b.state = StateIdle
}
