// Package engine drives a song run: it owns the timeline, routes key presses to
// lanes, advances and renders every lane once per frame, and stops once the last
// prompt plus the trailing grace period has passed.
//
// The controller is single-threaded. Time comes from an injected clock.Clock and the
// wait between frames from an injected clock.Pacer, so a whole run can be replayed
// deterministically in tests.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/clonebeat/internal/clock"
	"github.com/vovakirdan/clonebeat/internal/core"
	"github.com/vovakirdan/clonebeat/internal/judge"
	"github.com/vovakirdan/clonebeat/internal/lane"
	"github.com/vovakirdan/clonebeat/internal/song"
)

// DefaultGrace is the time the run continues after the last prompt.
const DefaultGrace = 5 * time.Second

// ErrNotStarted is returned by Run before Start succeeded.
var ErrNotStarted = errors.New("engine: run not started")

// Surface is the render collaborator. DrawFrame is called once per lane per frame,
// then Present once.
type Surface interface {
	lane.Drawer
	Present()
}

// Source yields the key presses received since the previous call.
type Source interface {
	Drain() []core.InputEvent
}

// Options configures a controller. Key identities map to lanes through Keys.
type Options struct {
	Judge       *judge.Judge
	Rules       song.Rules
	Layout      lane.Layout
	Keys        map[string]int
	Grace       time.Duration
	SheetFrames int
}

// DefaultOptions returns the standard timing, the 1qaz/2wsx/3edc/4rfv key map and
// the default layout.
func DefaultOptions() Options {
	return Options{
		Judge:       judge.Default(),
		Rules:       song.DefaultRules(),
		Layout:      lane.DefaultLayout(),
		Keys:        DefaultKeys(),
		Grace:       DefaultGrace,
		SheetFrames: 28,
	}
}

// DefaultKeys maps each keyboard column to a grid column, top to bottom.
func DefaultKeys() map[string]int {
	keys := make(map[string]int, song.LaneCount)
	for i, k := range []string{
		"1", "q", "a", "z",
		"2", "w", "s", "x",
		"3", "e", "d", "c",
		"4", "r", "f", "v",
	} {
		keys[k] = i
	}
	return keys
}

// Controller owns one run at a time.
type Controller struct {
	opts    Options
	clock   clock.Clock
	surface Surface
	logger  *log.Logger

	song    *song.Song
	buttons []*lane.Button
	start   time.Duration
	end     time.Duration
	now     time.Duration
	done    bool
	summary Summary
}

// New creates a controller. A nil logger discards output.
func New(opts Options, c clock.Clock, s Surface, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Judge == nil {
		opts.Judge = judge.Default()
	}
	return &Controller{
		opts:    opts,
		clock:   c,
		surface: s,
		logger:  logger,
	}
}

// Start validates the song and begins a new run at the current clock time.
// An invalid song leaves the controller without a run.
func (c *Controller) Start(s *song.Song) error {
	if err := c.opts.Rules.Validate(s.Events); err != nil {
		return fmt.Errorf("engine: song %q cannot be played: %w", s.Title, err)
	}
	for key, id := range c.opts.Keys {
		if id < 0 || id > song.MaxLane {
			return fmt.Errorf("engine: key %q mapped to lane %d, outside 0..%d", key, id, song.MaxLane)
		}
	}

	offsets := s.Offsets()
	c.buttons = make([]*lane.Button, song.LaneCount)
	for id := range c.buttons {
		c.buttons[id] = lane.New(id, c.opts.Layout.Rect(id), offsets[id], c.opts.Judge, c.opts.SheetFrames)
	}

	c.song = s
	c.start = c.clock.Now()
	c.end = c.start + s.Length() + c.opts.Grace
	c.now = c.start
	c.done = false
	c.summary = Summary{}

	c.logger.Info("run started",
		"song", s.Title,
		"events", len(s.Events),
		"length", s.Length(),
		"grace", c.opts.Grace,
	)
	return nil
}

// Step runs one frame: sample the clock, apply every press, advance and render every
// lane, present. It returns false once the sampled time is past the end of the run.
func (c *Controller) Step(events []core.InputEvent) bool {
	if c.buttons == nil || c.done {
		return false
	}

	c.now = c.clock.Now()
	t := c.now - c.start

	for _, ev := range events {
		id, ok := c.opts.Keys[ev.Key]
		if !ok {
			continue
		}
		at := t
		if ev.Stamped {
			at = ev.At - c.start
		}
		c.logger.Debug("key", "lane", id, "at", at)
		if res, ok := c.buttons[id].Hit(at); ok {
			c.summary.Record(res)
			c.logger.Debug("hit", "lane", id, "tier", res.Tier, "delta", res.Delta())
		}
	}

	for _, b := range c.buttons {
		for _, m := range b.Advance(t) {
			c.summary.Record(m)
			c.logger.Debug("miss", "lane", m.Lane, "offset", m.Offset)
		}
		b.Render(t, c.surface)
	}
	c.surface.Present()

	if c.now > c.end {
		c.done = true
		c.logger.Info("run finished", "song", c.song.Title, "summary", c.summary.String())
		return false
	}
	return true
}

// Run steps until the run ends, waiting on the pacer between frames.
// It returns early with the context error if the host cancels.
func (c *Controller) Run(ctx context.Context, src Source, p clock.Pacer) (Summary, error) {
	if c.buttons == nil {
		return Summary{}, ErrNotStarted
	}
	for c.Step(src.Drain()) {
		if err := p.Wait(ctx); err != nil {
			return c.summary, err
		}
	}
	return c.summary, nil
}

// Elapsed returns the song time of the last frame.
func (c *Controller) Elapsed() time.Duration {
	return c.now - c.start
}

// StartTime returns the clock reading at which the run started.
func (c *Controller) StartTime() time.Duration {
	return c.start
}

// EndTime returns the clock reading after which the run is over.
func (c *Controller) EndTime() time.Duration {
	return c.end
}

// Done reports whether the run has ended.
func (c *Controller) Done() bool {
	return c.done
}

// Song returns the song of the current run.
func (c *Controller) Song() *song.Song {
	return c.song
}

// Lane returns the button of a lane, or nil before Start.
func (c *Controller) Lane(id int) *lane.Button {
	if c.buttons == nil || id < 0 || id >= len(c.buttons) {
		return nil
	}
	return c.buttons[id]
}

// Summary returns the results so far.
func (c *Controller) Summary() Summary {
	return c.summary
}
