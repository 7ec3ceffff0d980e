// Package clock provides the monotonic time source and the frame pacing used by
// the game loop. Both are interfaces so tests can drive a run deterministically.
package clock

import (
	"context"
	"time"
)

// Clock reports monotonic time since an arbitrary, fixed epoch.
type Clock interface {
	Now() time.Duration
}

// Pacer blocks until the next frame should start.
// It is a throttle only; it never holds input back for more than one frame.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Monotonic is a wall clock backed by time.Since, which uses the monotonic reading.
type Monotonic struct {
	epoch time.Time
}

// NewMonotonic creates a clock whose zero is the moment of the call.
func NewMonotonic() *Monotonic {
	return &Monotonic{epoch: time.Now()}
}

// Now returns the time elapsed since the clock was created.
func (m *Monotonic) Now() time.Duration {
	return time.Since(m.epoch)
}

// Manual is a clock that only moves when told to.
type Manual struct {
	now time.Duration
}

// NewManual creates a manual clock reading start.
func NewManual(start time.Duration) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual reading.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Set moves the clock to t. Moving backwards is ignored.
func (m *Manual) Set(t time.Duration) {
	if t > m.now {
		m.now = t
	}
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	if d > 0 {
		m.now += d
	}
}

// FramePacer sleeps until the next frame deadline on a real clock.
// Deadlines are scheduled from the previous deadline, not from the wake-up time,
// so a slow frame does not push every later frame back.
type FramePacer struct {
	interval time.Duration
	clock    Clock
	next     time.Duration
}

// NewFramePacer creates a pacer targeting the given frames per second.
func NewFramePacer(c Clock, fps int) *FramePacer {
	if fps <= 0 {
		fps = 60
	}
	return &FramePacer{
		interval: time.Second / time.Duration(fps),
		clock:    c,
	}
}

// Interval returns the target frame interval.
func (p *FramePacer) Interval() time.Duration {
	return p.interval
}

// Wait blocks until the next deadline or until ctx is done.
func (p *FramePacer) Wait(ctx context.Context) error {
	now := p.clock.Now()
	if p.next == 0 || now-p.next > p.interval {
		// First frame, or we fell more than a frame behind: resynchronise.
		p.next = now
	}
	p.next += p.interval

	remaining := p.next - now
	if remaining <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(remaining)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// StepPacer advances a Manual clock by a fixed interval instead of sleeping.
type StepPacer struct {
	Clock    *Manual
	Interval time.Duration
}

// Wait advances the manual clock by one interval.
func (p StepPacer) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.Clock.Advance(p.Interval)
	return nil
}
