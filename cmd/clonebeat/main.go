// clonebeat is a 4x4 rhythm game for the terminal.
//
// Usage:
//
//	clonebeat play <song>       - Play a song file
//	clonebeat menu              - Pick a song from the library interactively
//	clonebeat list              - Index the library and list its songs
//	clonebeat validate <song>.. - Check song files for playability
//	clonebeat simulate <song>   - Run a song headless with an autoplayer
//	clonebeat serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>           - Set frame rate (default: from config, 60)
//	--config <path>        - Use a custom config file
//	--db <path>            - Set library database path (default: ~/.clonebeat/library.db)
//	--songs <dir>          - Set song library directory (default: ./songs)
//	--difficulty <preset>  - easy, normal or hard
//	--log-level <level>    - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/clonebeat/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagConfig     string
	flagDBPath     string
	flagSongsDir   string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clonebeat",
	Short: "clonebeat - a 4x4 rhythm game in your terminal",
	Long: `clonebeat lights up a 4x4 grid of lanes in time with a song script.
Press each lane's key as its prompt completes to score Good, Great or Perfect.

Lanes are played with four keyboard columns:
  1 2 3 4
  q w e r
  a s d f
  z x c v

Available commands:
  play      - Play a song file directly
  menu      - Interactive song picker
  list      - Index the song library and list it
  validate  - Check song files for playability
  simulate  - Run a song headless with an autoplayer
  serve     - Start SSH server for remote play

Examples:
  clonebeat play songs/warmup.yaml
  clonebeat menu --songs ./songs
  clonebeat validate songs/*.yaml
  clonebeat simulate songs/warmup.yaml --delay 300
  clonebeat serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = use config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.clonebeat/library.db", "Path to song library database")
	rootCmd.PersistentFlags().StringVar(&flagSongsDir, "songs", "songs", "Song library directory")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger from --log-level.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "clonebeat",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using warn", "level", flagLogLevel)
		level = log.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadConfig loads the configuration and applies the command line overrides.
func loadConfig() (config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	name := string(cfg.Difficulty)
	if flagDifficulty != "" {
		name = flagDifficulty
	}
	preset, err := config.ParsePreset(name)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)

	if flagFPS > 0 {
		cfg.FPS = flagFPS
	}
	return cfg, cfg.Validate()
}

// fatal prints an error and exits with status 1.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
