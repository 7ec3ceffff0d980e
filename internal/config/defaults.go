package config

import (
	_ "embed"
)

//go:embed defaults/clonebeat.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration. It matches defaults/clonebeat.yaml.
func DefaultConfig() GameConfig {
	return GameConfig{
		Difficulty: DifficultyNormal,
		Timing: TimingConfig{
			FrameRate:     60,
			PreFrames:     28,
			PostFrames:    8,
			GraceMs:       5000,
			MinSpacingMs:  190,
			SpacingPolicy: "predecessor",
		},
		Buckets: []BucketConfig{
			{From: 0, To: 12, Tier: "good"},
			{From: 12, To: 18, Tier: "great"},
			{From: 18, To: 32, Tier: "perfect"},
			{From: 32, To: 40, Tier: "great"},
		},
		Grid: GridConfig{
			BaseX:   2,
			StrideX: 12,
			BaseY:   1,
			StrideY: 5,
			CellW:   10,
			CellH:   4,
		},
		Keys: DefaultKeyMap(),
		Skin: "blocks",
		FPS:  60,
	}
}

// DefaultKeyMap binds the keyboard columns 1qaz, 2wsx, 3edc and 4rfv to the grid
// columns, top to bottom.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		"1": 0, "q": 1, "a": 2, "z": 3,
		"2": 4, "w": 5, "s": 6, "x": 7,
		"3": 8, "e": 9, "d": 10, "c": 11,
		"4": 12, "r": 13, "f": 14, "v": 15,
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
