package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <song>...",
	Short: "Check song files for playability",
	Long: `Parse and validate each song file.

A song is rejected when an event names a lane outside 0-15, has a negative
offset, or sits closer than the minimum spacing to another event on the
same lane. Exits with status 1 if any file fails.

Examples:
  clonebeat validate songs/warmup.yaml
  clonebeat validate songs/*.yaml --config ./strict.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}

	failed := 0
	for _, path := range args {
		s, err := loadPlayable(path, cfg)
		if err != nil {
			fmt.Printf("FAIL  %s\n      %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("ok    %s  (%d events, %d lanes, %s)\n",
			path, len(s.Events), s.LanesUsed(), s.Length())
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d songs failed validation\n", failed, len(args))
		os.Exit(1)
	}
}
