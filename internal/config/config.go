// Package config provides YAML-based configuration loading, validation and
// difficulty presets for clonebeat.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/clonebeat/internal/engine"
	"github.com/vovakirdan/clonebeat/internal/judge"
	"github.com/vovakirdan/clonebeat/internal/lane"
	"github.com/vovakirdan/clonebeat/internal/song"
)

// GameConfig contains everything that shapes a run.
type GameConfig struct {
	Difficulty DifficultyPreset `yaml:"difficulty"`
	Timing     TimingConfig     `yaml:"timing"`
	Buckets    []BucketConfig   `yaml:"buckets"`
	Grid       GridConfig       `yaml:"grid"`
	Keys       KeyMap           `yaml:"keys"`
	Skin       string           `yaml:"skin"`
	FPS        int              `yaml:"fps"`
}

// TimingConfig defines the judgment window and the run timeline.
type TimingConfig struct {
	FrameRate     int    `yaml:"frame_rate"`  // frame units per second
	PreFrames     int    `yaml:"pre_frames"`  // window opens this many units early
	PostFrames    int    `yaml:"post_frames"` // window closes this many units late
	GraceMs       int    `yaml:"grace_ms"`
	MinSpacingMs  int    `yaml:"min_spacing_ms"`
	SpacingPolicy string `yaml:"spacing_policy"` // "predecessor" or "first"
}

// BucketConfig is one row of the grading table, in frame units from the prompt.
type BucketConfig struct {
	From int    `yaml:"from"`
	To   int    `yaml:"to"`
	Tier string `yaml:"tier"`
}

// GridConfig places the 4x4 lane grid in terminal cells.
type GridConfig struct {
	BaseX   int `yaml:"base_x"`
	StrideX int `yaml:"stride_x"`
	BaseY   int `yaml:"base_y"`
	StrideY int `yaml:"stride_y"`
	CellW   int `yaml:"cell_w"`
	CellH   int `yaml:"cell_h"`
}

// KeyMap maps a key identity (as reported by the terminal) to a lane.
type KeyMap map[string]int

// Lane returns the lane bound to key.
func (k KeyMap) Lane(key string) (int, bool) {
	id, ok := k[key]
	return id, ok
}

// Keys returns the keys bound to a lane.
func (k KeyMap) Keys(id int) []string {
	var keys []string
	for key, l := range k {
		if l == id {
			keys = append(keys, key)
		}
	}
	return keys
}

// Validate reports the first problem that would make the configuration unusable.
func (c GameConfig) Validate() error {
	t := c.Timing
	if t.FrameRate <= 0 {
		return fmt.Errorf("config: timing.frame_rate must be positive, got %d", t.FrameRate)
	}
	if t.PreFrames < 0 || t.PostFrames < 0 {
		return fmt.Errorf("config: timing window must not be negative, got pre %d post %d", t.PreFrames, t.PostFrames)
	}
	if t.GraceMs < 0 {
		return fmt.Errorf("config: timing.grace_ms must not be negative, got %d", t.GraceMs)
	}
	if t.MinSpacingMs < 0 {
		return fmt.Errorf("config: timing.min_spacing_ms must not be negative, got %d", t.MinSpacingMs)
	}
	if _, err := parsePolicy(t.SpacingPolicy); err != nil {
		return err
	}

	if len(c.Buckets) == 0 {
		return fmt.Errorf("config: at least one judgment bucket is required")
	}
	for i, b := range c.Buckets {
		if b.From < 0 || b.To <= b.From {
			return fmt.Errorf("config: bucket %d has empty range [%d,%d)", i, b.From, b.To)
		}
		if i > 0 && b.From < c.Buckets[i-1].To {
			return fmt.Errorf("config: bucket %d overlaps bucket %d", i, i-1)
		}
		if _, err := judge.ParseTier(b.Tier); err != nil {
			return fmt.Errorf("config: bucket %d: %w", i, err)
		}
	}

	g := c.Grid
	if g.StrideX <= 0 || g.StrideY <= 0 || g.CellW <= 0 || g.CellH <= 0 {
		return fmt.Errorf("config: grid strides and cell size must be positive")
	}

	if len(c.Keys) == 0 {
		return fmt.Errorf("config: no keys are mapped")
	}
	for key, id := range c.Keys {
		if key == "" {
			return fmt.Errorf("config: empty key mapped to lane %d", id)
		}
		if id < 0 || id > song.MaxLane {
			return fmt.Errorf("config: key %q mapped to lane %d, outside 0..%d", key, id, song.MaxLane)
		}
	}

	if c.FPS <= 0 {
		return fmt.Errorf("config: fps must be positive, got %d", c.FPS)
	}
	return nil
}

// Window returns the judgment window.
func (c GameConfig) Window() judge.Window {
	return judge.NewWindow(c.Timing.FrameRate, c.Timing.PreFrames, c.Timing.PostFrames)
}

// Judge builds the judge from the window and the bucket table.
func (c GameConfig) Judge() (*judge.Judge, error) {
	buckets := make([]judge.Bucket, 0, len(c.Buckets))
	for _, b := range c.Buckets {
		tier, err := judge.ParseTier(b.Tier)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		buckets = append(buckets, judge.Bucket{From: b.From, To: b.To, Tier: tier})
	}
	return judge.New(c.Window(), buckets), nil
}

// Rules returns the song validation rules.
func (c GameConfig) Rules() song.Rules {
	policy, err := parsePolicy(c.Timing.SpacingPolicy)
	if err != nil {
		policy = song.SpacingPredecessor
	}
	return song.Rules{MinSpacingMs: c.Timing.MinSpacingMs, Policy: policy}
}

// Layout returns the lane grid.
func (c GameConfig) Layout() lane.Layout {
	return lane.Layout{
		BaseX:   c.Grid.BaseX,
		StrideX: c.Grid.StrideX,
		BaseY:   c.Grid.BaseY,
		StrideY: c.Grid.StrideY,
		CellW:   c.Grid.CellW,
		CellH:   c.Grid.CellH,
	}
}

// EngineOptions builds the controller options for a sprite sheet of sheetFrames frames.
func (c GameConfig) EngineOptions(sheetFrames int) (engine.Options, error) {
	j, err := c.Judge()
	if err != nil {
		return engine.Options{}, err
	}
	return engine.Options{
		Judge:       j,
		Rules:       c.Rules(),
		Layout:      c.Layout(),
		Keys:        c.Keys,
		Grace:       c.Grace(),
		SheetFrames: sheetFrames,
	}, nil
}

// Grace returns the time a run continues after its last prompt.
func (c GameConfig) Grace() time.Duration {
	return time.Duration(c.Timing.GraceMs) * time.Millisecond
}

func parsePolicy(s string) (song.SpacingPolicy, error) {
	switch song.SpacingPolicy(s) {
	case "", song.SpacingPredecessor:
		return song.SpacingPredecessor, nil
	case song.SpacingFirst:
		return song.SpacingFirst, nil
	}
	return "", fmt.Errorf("config: unknown spacing_policy %q", s)
}
