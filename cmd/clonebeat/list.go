package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/clonebeat/internal/config"
	"github.com/vovakirdan/clonebeat/internal/library"
	"github.com/vovakirdan/clonebeat/internal/skin"
	"github.com/vovakirdan/clonebeat/internal/storage"
)

var flagPlayableOnly bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Index the song library and list it",
	Long: `Scan the song directory, refresh the library database and print
every indexed song along with the available skins.

Examples:
  clonebeat list
  clonebeat list --songs ~/charts --playable`,
	Args: cobra.NoArgs,
	Run:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagPlayableOnly, "playable", false, "Only list songs that pass validation")
}

func runList(cmd *cobra.Command, args []string) {
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

	songs, err := store.Songs(flagPlayableOnly)
	if err != nil {
		fatal("failed to read library: %v", err)
	}

	fmt.Printf("Songs in %s:\n\n", flagSongsDir)
	if len(songs) == 0 {
		fmt.Println("  (none)")
	}
	for _, rec := range songs {
		status := "ok"
		if !rec.Valid {
			status = "invalid"
		}
		length := time.Duration(rec.LengthMs) * time.Millisecond
		fmt.Printf("  %-24s %-16s %4d events  %8s  %-7s %s\n",
			rec.Title, rec.Artist, rec.Events, length, status, rec.Path)
		if rec.Problem != "" {
			fmt.Printf("  %24s %s\n", "", rec.Problem)
		}
	}

	stats, err := store.Stats()
	if err == nil {
		total := time.Duration(stats.TotalLengthMs) * time.Millisecond
		fmt.Printf("\n%d songs, %d playable, %s of music\n", stats.Songs, stats.Playable, total)
	}

	fmt.Println("\nSkins:")
	for _, info := range skin.List() {
		marker := " "
		if info.ID == cfg.Skin {
			marker = "*"
		}
		fmt.Printf(" %s %-10s %s\n", marker, info.ID, info.Title)
	}
}

// openLibrary opens the song database and refreshes it from --songs.
func openLibrary(cfg config.GameConfig, logger *log.Logger) (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}

	report, err := library.NewIndexer(store, cfg.Rules(), logger).Index(flagSongsDir)
	if err != nil {
		store.Close()
		return nil, err
	}
	logger.Info("library refreshed",
		"scanned", report.Scanned,
		"playable", report.Playable,
		"invalid", report.Invalid,
		"broken", report.Broken,
		"removed", report.Removed)
	return store, nil
}
