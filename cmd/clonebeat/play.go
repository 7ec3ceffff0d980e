package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/clonebeat/internal/config"
	"github.com/vovakirdan/clonebeat/internal/core"
	"github.com/vovakirdan/clonebeat/internal/platform/tui"
	"github.com/vovakirdan/clonebeat/internal/song"
)

var playCmd = &cobra.Command{
	Use:   "play <song>",
	Short: "Play a song file",
	Long: `Play a single song script.

Each lane shows an approach animation that completes on the scripted beat.
Press the lane's key while the animation runs; the closer to completion,
the better the judgment.

On normal and hard, presses are only accepted up to a few frames after the
beat, so every hit scores Good. Use --difficulty easy to keep late presses
open long enough to reach Great and Perfect.

Controls:
  1 2 3 4 / q w e r / a s d f / z x c v - Lanes
  Ctrl+R  - Replay (after the song ends)
  Esc     - Quit
  Ctrl+C  - Quit

Examples:
  clonebeat play songs/warmup.yaml
  clonebeat play songs/warmup.jsonc --difficulty hard
  clonebeat play songs/warmup.yaml --config ./my-clonebeat.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}

	s, err := loadPlayable(args[0], cfg)
	if err != nil {
		fatal("%v", err)
	}

	opts, err := tui.NewOptions(cfg, nil, logger)
	if err != nil {
		fatal("%v", err)
	}
	opts.Runtime = terminalRuntime(cfg)

	summary, err := tui.RunPlay(opts, s)
	if err != nil {
		fatal("%v", err)
	}

	fmt.Printf("%s\n%s\n", s.Title, summary)
}

// loadPlayable parses a song file and checks it against the configured rules.
func loadPlayable(path string, cfg config.GameConfig) (*song.Song, error) {
	s, err := song.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Rules().Validate(s.Events); err != nil {
		return nil, fmt.Errorf("song %s: %w", path, err)
	}
	return s, nil
}

// terminalRuntime sizes the screen to the controlling terminal.
func terminalRuntime(cfg config.GameConfig) core.RuntimeConfig {
	rt := core.DefaultConfig()
	rt.TickRate = cfg.FPS
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	return rt
}
