package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/encounter-tracker/internal/encounter"
	"github.com/vovakirdan/encounter-tracker/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve <encounter.yaml>",
	Short: "Start the picker SSH server",
	Long: `Start an SSH server that lets players connect and compare how each
rule system rates the encounter.

Each SSH connection gets its own picker session.
Saved ratings are stored per-server (all users share the same history).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.encounter/host_key

Examples:
  encounter serve goblins.yaml                  # Listen on :23235
  encounter serve goblins.yaml --ssh :2222      # Listen on port 2222
  encounter serve goblins.yaml --db ./rates.db  # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.ExactArgs(1),
	Run:  runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(defaults.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, args []string) {
	e := mustEnv()

	enc, err := encounter.LoadFile(args[0])
	if err != nil {
		exitf("Error: %v\n", err)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      e.cfg.DBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg, tui.SessionOptions{
		Encounter:     enc,
		Party:         e.party(enc),
		Lookup:        e.book.Lookup,
		InitialSystem: e.cfg.System,
	}, e.logger)
	if err != nil {
		exitf("Error creating server: %v\n", err)
	}

	fmt.Printf("Serving %q on %s\n", enc.Name, server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		exitf("Server error: %v\n", err)
	}
}
