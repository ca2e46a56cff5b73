package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/encounter-tracker/internal/encounter"
	"github.com/vovakirdan/encounter-tracker/internal/platform/tui"
	"github.com/vovakirdan/encounter-tracker/internal/storage"
)

var pickCmd = &cobra.Command{
	Use:   "pick <encounter.yaml>",
	Short: "Compare rule systems interactively",
	Long: `Open an interactive picker that rates the encounter under each
registered system as you move between them.

Controls:
  Up/Down/j/k  - Change system
  Enter        - Save the current rating
  Tab          - Saved rating history
  Q            - Quit

Examples:
  encounter pick goblins.yaml
  encounter pick goblins.yaml --party 7,7,8`,
	Args: cobra.ExactArgs(1),
	Run:  runPick,
}

func runPick(_ *cobra.Command, args []string) {
	e := mustEnv()

	enc, err := encounter.LoadFile(args[0])
	if err != nil {
		exitf("Error: %v\n", err)
	}

	store, err := storage.Open(e.cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open ratings database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	width, height := termSize()
	result, err := tui.RunPicker(tui.SessionOptions{
		Encounter:     enc,
		Party:         e.party(enc),
		Lookup:        e.book.Lookup,
		Store:         store,
		Logger:        e.logger,
		InitialSystem: e.cfg.System,
		Width:         width,
		Height:        height,
	})
	if err != nil {
		exitf("Error: %v\n", err)
	}

	if result.SystemID != "" {
		fmt.Println(tui.RenderReport(result.Report, width))
	}
	if result.Saved > 0 {
		fmt.Printf("Saved %d rating(s).\n", result.Saved)
	}
}
