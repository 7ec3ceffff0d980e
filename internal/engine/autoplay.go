package engine

import (
	"sort"
	"time"

	"github.com/vovakirdan/clonebeat/internal/clock"
	"github.com/vovakirdan/clonebeat/internal/core"
	"github.com/vovakirdan/clonebeat/internal/song"
)

// Autoplayer is a Source that presses every prompt of a song at a fixed offset
// from its scripted time. Presses are stamped so the result does not depend on the
// frame rate.
type Autoplayer struct {
	clock   clock.Clock
	start   time.Duration
	delay   time.Duration
	presses []core.InputEvent
}

// NewAutoplayer builds presses for every event whose lane has a key in keys.
// start is the clock reading at which the run began.
func NewAutoplayer(c clock.Clock, s *song.Song, keys map[string]int, start, delay time.Duration) *Autoplayer {
	byLane := make(map[int]string, len(keys))
	for k, id := range keys {
		// Several keys may share a lane; pick one deterministically.
		if cur, ok := byLane[id]; !ok || k < cur {
			byLane[id] = k
		}
	}

	presses := make([]core.InputEvent, 0, len(s.Events))
	for _, ev := range s.Events {
		key, ok := byLane[ev.Lane]
		if !ok {
			continue
		}
		presses = append(presses, core.InputEvent{
			Key:     key,
			At:      start + ev.At() + delay,
			Stamped: true,
		})
	}
	sort.SliceStable(presses, func(i, j int) bool { return presses[i].At < presses[j].At })

	return &Autoplayer{clock: c, start: start, delay: delay, presses: presses}
}

// Drain returns the presses that are due at the current clock time.
func (a *Autoplayer) Drain() []core.InputEvent {
	now := a.clock.Now()
	n := 0
	for n < len(a.presses) && a.presses[n].At <= now {
		n++
	}
	if n == 0 {
		return nil
	}
	out := a.presses[:n:n]
	a.presses = a.presses[n:]
	return out
}

// Remaining returns the number of presses not yet delivered.
func (a *Autoplayer) Remaining() int {
	return len(a.presses)
}
