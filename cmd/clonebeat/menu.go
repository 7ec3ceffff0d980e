package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/clonebeat/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a song from the library",
	Long: `Index the song directory and open an interactive song picker.
Finished songs return to the picker.

Controls:
  Up/Down  - Select song
  Enter    - Play
  Esc      - Back to the picker (while playing)
  q        - Quit

Examples:
  clonebeat menu
  clonebeat menu --songs ~/charts --difficulty easy`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(cmd *cobra.Command, args []string) {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}

	store, err := openLibrary(cfg, logger)
	if err != nil {
		fatal("%v", err)
	}
	defer store.Close()

	opts, err := tui.NewOptions(cfg, store, logger)
	if err != nil {
		fatal("%v", err)
	}
	opts.Runtime = terminalRuntime(cfg)

	if err := tui.RunSession(opts); err != nil {
		fatal("%v", err)
	}
}
