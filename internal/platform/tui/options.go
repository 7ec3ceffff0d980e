package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/clonebeat/internal/config"
	"github.com/vovakirdan/clonebeat/internal/core"
	"github.com/vovakirdan/clonebeat/internal/skin"
	"github.com/vovakirdan/clonebeat/internal/storage"
)

// Options holds what every play screen needs. It is built once by the command and
// shared read-only between sessions.
type Options struct {
	Config  config.GameConfig
	Sheet   *skin.Sheet
	Library *storage.Store // song catalogue for the picker; may be nil for single-song play
	Logger  *log.Logger
	Runtime core.RuntimeConfig
}

// NewOptions resolves the skin named by cfg and checks it against the lane cells.
func NewOptions(cfg config.GameConfig, library *storage.Store, logger *log.Logger) (Options, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sheet, err := skin.Resolve(cfg.Skin, cfg.Grid.CellW, cfg.Grid.CellH, skin.DefaultFrames)
	if err != nil {
		return Options{}, fmt.Errorf("tui: %w", err)
	}

	rt := core.DefaultConfig()
	rt.TickRate = cfg.FPS

	return Options{
		Config:  cfg,
		Sheet:   sheet,
		Library: library,
		Logger:  logger,
		Runtime: rt,
	}, nil
}
