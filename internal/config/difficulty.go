package config

import "fmt"

// DifficultyPreset represents a named timing preset.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the known presets from easiest to hardest.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParsePreset converts a flag value to a preset. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (expected easy, normal or hard)", s)
}

// ApplyPreset adjusts the judgment window for a preset.
// Easy keeps the window open until the last bucket ends, so late presses can earn
// every tier. Hard narrows both sides. Normal leaves the configured window as is.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	cfg.Difficulty = preset

	switch preset {
	case DifficultyEasy:
		cfg.Timing.PreFrames = 32
		if last := lastBucketEnd(cfg.Buckets); last > cfg.Timing.PostFrames {
			cfg.Timing.PostFrames = last
		}
	case DifficultyHard:
		cfg.Timing.PreFrames = 20
		cfg.Timing.PostFrames = 6
		cfg.Timing.GraceMs = 3000
	}
}

func lastBucketEnd(buckets []BucketConfig) int {
	end := 0
	for _, b := range buckets {
		if b.To > end {
			end = b.To
		}
	}
	return end
}
