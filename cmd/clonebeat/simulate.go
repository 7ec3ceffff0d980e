package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/clonebeat/internal/clock"
	"github.com/vovakirdan/clonebeat/internal/core"
	"github.com/vovakirdan/clonebeat/internal/engine"
	"github.com/vovakirdan/clonebeat/internal/platform/tui"
	"github.com/vovakirdan/clonebeat/internal/skin"
)

var (
	flagDelayMs   int
	flagShowFinal bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <song>",
	Short: "Run a song headless with an autoplayer",
	Long: `Play a song without a terminal. A simulated player presses every prompt
--delay milliseconds after its scripted time (negative values press early),
and the clock advances exactly one frame per step, so results are repeatable.

Examples:
  clonebeat simulate songs/warmup.yaml
  clonebeat simulate songs/warmup.yaml --delay 300
  clonebeat simulate songs/warmup.yaml --delay -400 --difficulty easy --show`,
	Args: cobra.ExactArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagDelayMs, "delay", 0, "Press offset from each scripted time in ms")
	simulateCmd.Flags().BoolVar(&flagShowFinal, "show", false, "Print the final frame")
}

func runSimulate(cmd *cobra.Command, args []string) {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}

	s, err := loadPlayable(args[0], cfg)
	if err != nil {
		fatal("%v", err)
	}

	sheet, err := skin.Resolve(cfg.Skin, cfg.Grid.CellW, cfg.Grid.CellH, skin.DefaultFrames)
	if err != nil {
		fatal("%v", err)
	}
	engineOpts, err := cfg.EngineOptions(sheet.Len())
	if err != nil {
		fatal("%v", err)
	}

	rt := core.DefaultConfig()
	screen := core.NewScreen(rt.ScreenW, rt.ScreenH)
	surface := tui.NewScreenSurface(screen, sheet, cfg.Layout())

	clk := clock.NewManual(0)
	ctrl := engine.New(engineOpts, clk, surface, logger)
	if err := ctrl.Start(s); err != nil {
		fatal("%v", err)
	}

	delay := time.Duration(flagDelayMs) * time.Millisecond
	player := engine.NewAutoplayer(clk, s, cfg.Keys, ctrl.StartTime(), delay)
	pacer := clock.StepPacer{Clock: clk, Interval: time.Second / time.Duration(cfg.FPS)}

	summary, err := ctrl.Run(context.Background(), player, pacer)
	if err != nil {
		fatal("%v", err)
	}

	if flagShowFinal {
		fmt.Println(screen.String())
	}
	fmt.Printf("%s  (%d events, %d frames, press delay %s)\n",
		s.Title, len(s.Events), surface.Presents(), delay)
	fmt.Println(summary)
}
