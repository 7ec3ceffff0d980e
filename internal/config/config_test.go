package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/clonebeat/internal/engine"
	"github.com/vovakirdan/clonebeat/internal/judge"
	"github.com/vovakirdan/clonebeat/internal/song"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := decode(DefaultYAML())
	if err != nil {
		t.Fatalf("decode embedded defaults: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Load() = %+v, expected defaults", cfg)
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".clonebeat")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("fps: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.FPS != 30 {
		t.Errorf("FPS = %d, expected 30", cfg.FPS)
	}
}

func TestLoadCustomPartial(t *testing.T) {
	path := writeConfig(t, `
timing:
  post_frames: 12
  grace_ms: 2000
skin: ascii
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Timing.PostFrames != 12 || cfg.Timing.PreFrames != 28 {
		t.Errorf("timing = %+v, expected post 12 and default pre", cfg.Timing)
	}
	if cfg.Grace() != 2*time.Second {
		t.Errorf("Grace() = %v, expected 2s", cfg.Grace())
	}
	if cfg.Skin != "ascii" {
		t.Errorf("Skin = %q, expected ascii", cfg.Skin)
	}
	if len(cfg.Keys) != song.LaneCount {
		t.Errorf("len(Keys) = %d, expected default map", len(cfg.Keys))
	}
}

func TestLoadCustomKeysReplaceDefaults(t *testing.T) {
	path := writeConfig(t, `
keys:
  j: 0
  k: 1
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Keys) != 2 {
		t.Fatalf("Keys = %v, expected only j and k", cfg.Keys)
	}
	if id, ok := cfg.Keys.Lane("k"); !ok || id != 1 {
		t.Errorf("Lane(k) = %d, %v, expected 1, true", id, ok)
	}
	if _, ok := cfg.Keys.Lane("q"); ok {
		t.Error("default key q should be replaced")
	}
}

func TestLoadCustomErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.yaml"), ""},
		{"bad yaml", "", "timing: [unclosed"},
		{"invalid values", "", "fps: 0\n"},
		{"lane out of range", "", "keys:\n  p: 16\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if path == "" {
				path = writeConfig(t, tt.content)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
		ok     bool
	}{
		{"defaults", func(*GameConfig) {}, true},
		{"zero frame rate", func(c *GameConfig) { c.Timing.FrameRate = 0 }, false},
		{"negative pre", func(c *GameConfig) { c.Timing.PreFrames = -1 }, false},
		{"negative grace", func(c *GameConfig) { c.Timing.GraceMs = -1 }, false},
		{"unknown policy", func(c *GameConfig) { c.Timing.SpacingPolicy = "nearest" }, false},
		{"first policy", func(c *GameConfig) { c.Timing.SpacingPolicy = "first" }, true},
		{"no buckets", func(c *GameConfig) { c.Buckets = nil }, false},
		{"empty bucket", func(c *GameConfig) { c.Buckets[0].To = 0 }, false},
		{"overlapping buckets", func(c *GameConfig) { c.Buckets[1].From = 10 }, false},
		{"unknown tier", func(c *GameConfig) { c.Buckets[2].Tier = "marvelous" }, false},
		{"zero stride", func(c *GameConfig) { c.Grid.StrideX = 0 }, false},
		{"no keys", func(c *GameConfig) { c.Keys = KeyMap{} }, false},
		{"empty key", func(c *GameConfig) { c.Keys[""] = 3 }, false},
		{"negative lane", func(c *GameConfig) { c.Keys["p"] = -1 }, false},
		{"zero fps", func(c *GameConfig) { c.FPS = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, expected ok = %v", err, tt.ok)
			}
		})
	}
}

func TestJudgeFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	j, err := cfg.Judge()
	if err != nil {
		t.Fatalf("Judge() error = %v", err)
	}
	if !reflect.DeepEqual(j, judge.Default()) {
		t.Errorf("Judge() = %+v, expected the default judge", j)
	}

	cfg.Buckets[0].Tier = "ok"
	if _, err := cfg.Judge(); err == nil {
		t.Error("Judge() with an unknown tier should fail")
	}
}

func TestRules(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Rules(); got != song.DefaultRules() {
		t.Errorf("Rules() = %+v, expected %+v", got, song.DefaultRules())
	}

	cfg.Timing.SpacingPolicy = "first"
	cfg.Timing.MinSpacingMs = 250
	got := cfg.Rules()
	if got.Policy != song.SpacingFirst || got.MinSpacingMs != 250 {
		t.Errorf("Rules() = %+v, expected first/250", got)
	}
}

func TestLayoutFromConfig(t *testing.T) {
	r := DefaultConfig().Layout().Rect(5)
	if r.X != 14 || r.Y != 6 || r.W != 10 || r.H != 4 {
		t.Errorf("Rect(5) = %+v, expected {14 6 10 4}", r)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		pre, post int
	}{
		{DifficultyEasy, 32, 40},
		{DifficultyNormal, 28, 8},
		{DifficultyHard, 20, 6},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultConfig()
			ApplyPreset(&cfg, tt.preset)
			if cfg.Timing.PreFrames != tt.pre || cfg.Timing.PostFrames != tt.post {
				t.Errorf("window = %d/%d, expected %d/%d",
					cfg.Timing.PreFrames, cfg.Timing.PostFrames, tt.pre, tt.post)
			}
			if cfg.Difficulty != tt.preset {
				t.Errorf("Difficulty = %q, expected %q", cfg.Difficulty, tt.preset)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() after preset = %v", err)
			}
		})
	}
}

func TestEasyPresetReachesEveryBucket(t *testing.T) {
	cfg := DefaultConfig()
	ApplyPreset(&cfg, DifficultyEasy)
	j, err := cfg.Judge()
	if err != nil {
		t.Fatal(err)
	}

	// 600ms late lands in the last bucket.
	if tier, ok := j.Judge(time.Second, 1600*time.Millisecond); !ok || tier != judge.TierGreat {
		t.Errorf("Judge(+600ms) = %v, %v, expected Great", tier, ok)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
		ok   bool
	}{
		{"", DifficultyNormal, true},
		{"easy", DifficultyEasy, true},
		{"hard", DifficultyHard, true},
		{"insane", "", false},
	}

	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, %v, expected %q", tt.in, got, err, tt.want)
		}
	}
}

func TestKeyMapKeys(t *testing.T) {
	keys := DefaultKeyMap().Keys(9)
	if len(keys) != 1 || keys[0] != "e" {
		t.Errorf("Keys(9) = %v, expected [e]", keys)
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timing.GraceMs = 1500

	opts, err := cfg.EngineOptions(12)
	if err != nil {
		t.Fatalf("EngineOptions() error = %v", err)
	}
	if opts.SheetFrames != 12 || opts.Grace != 1500*time.Millisecond {
		t.Errorf("EngineOptions() = frames %d grace %v, expected 12 and 1.5s", opts.SheetFrames, opts.Grace)
	}
	if !reflect.DeepEqual(opts.Keys, engine.DefaultKeys()) {
		t.Errorf("Keys = %v, expected the default key map", opts.Keys)
	}
	if opts.Layout != engine.DefaultOptions().Layout {
		t.Errorf("Layout = %+v, expected the default layout", opts.Layout)
	}
}
