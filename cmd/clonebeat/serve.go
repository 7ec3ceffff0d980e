package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/clonebeat/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server for remote play",
	Long: `Start an SSH server so players can connect and pick songs remotely.
Every connection gets its own song picker and its own run.

Connect with:
  ssh -p 23234 localhost

Note: without --host-key a key is generated at ~/.clonebeat/host_key.

Examples:
  clonebeat serve
  clonebeat serve --ssh :2222
  clonebeat serve --ssh 0.0.0.0:23234 --songs /srv/charts`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to SSH host key")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", defaults.IdleTimeout, "Disconnect idle sessions after this long")
}

func runServe(cmd *cobra.Command, args []string) {
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

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: flagIdleTimeout,
	}, opts)
	if err != nil {
		fatal("failed to create server: %v", err)
	}

	fmt.Printf("SSH server listening on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fatal("server error: %v", err)
	}
}
