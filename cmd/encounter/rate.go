package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/encounter-tracker/internal/encounter"
	"github.com/vovakirdan/encounter-tracker/internal/platform/tui"
	"github.com/vovakirdan/encounter-tracker/internal/registry"
	"github.com/vovakirdan/encounter-tracker/internal/storage"
)

var (
	flagRateAll  bool
	flagRateSave bool
)

var rateCmd = &cobra.Command{
	Use:   "rate <encounter.yaml>",
	Short: "Rate an encounter file",
	Long: `Rate the creatures in an encounter file against the party.

Creatures are looked up in the bestiary by name; cr and level set in the
encounter file override the bestiary. Creatures the system cannot rate are
listed with the reason and add nothing to the total.

Examples:
  encounter rate goblins.yaml
  encounter rate goblins.yaml --system pf2e --party 3,3,4
  encounter rate goblins.yaml --all
  encounter rate goblins.yaml --save`,
	Args: cobra.ExactArgs(1),
	Run:  runRate,
}

func init() {
	rateCmd.Flags().BoolVar(&flagRateAll, "all", false, "Rate under every registered system")
	rateCmd.Flags().BoolVar(&flagRateSave, "save", false, "Save the rating to history")
}

func runRate(_ *cobra.Command, args []string) {
	e := mustEnv()

	enc, err := encounter.LoadFile(args[0])
	if err != nil {
		exitf("Error: %v\n", err)
	}

	var systems []registry.RpgSystem
	if flagRateAll {
		for _, info := range registry.List() {
			sys, err := registry.Create(info.ID, e.book.Lookup)
			if err != nil {
				exitf("Error creating system: %v\n", err)
			}
			systems = append(systems, sys)
		}
	} else {
		sys, err := e.system()
		if err != nil {
			exitf("Error: %v\n", err)
		}
		systems = append(systems, sys)
	}

	var store *storage.Store
	if flagRateSave {
		store, err = storage.Open(e.cfg.DBPath)
		if err != nil {
			exitf("Error opening ratings database: %v\n", err)
		}
		defer store.Close()
	}

	width, _ := termSize()
	party := e.party(enc)
	for _, sys := range systems {
		report := encounter.NewRater(sys, e.logger).Rate(enc, party)
		fmt.Println(tui.RenderReport(report, width))

		if store != nil {
			id, err := store.SaveRating(storage.RatingFromReport(report))
			if err != nil {
				e.logger.Error("could not save rating", "system", sys.ID(), "error", err)
				continue
			}
			e.logger.Info("rating saved", "id", id, "system", sys.ID())
		}
	}
}

// termSize returns the terminal size, or 80x24 when stdout is not a terminal.
func termSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
