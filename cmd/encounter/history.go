package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/encounter-tracker/internal/platform/tui"
	"github.com/vovakirdan/encounter-tracker/internal/storage"
)

var (
	flagHistoryLimit       int
	flagHistoryOnly        string
	flagHistoryClear       bool
	flagHistoryInteractive bool
	flagHistoryID          string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show saved ratings",
	Long: `Display the most recently saved encounter ratings.

Examples:
  encounter history
  encounter history --only pf2e --limit 5
  encounter history -i
  encounter history --id 0b6f3c1e-7d3a-4a8e-9c55-2f1d8e6a4b10
  encounter history --clear --only dnd5e`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of ratings to show")
	historyCmd.Flags().StringVar(&flagHistoryOnly, "only", "", "Only show ratings made with this system")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete saved ratings (all, or --only one system)")
	historyCmd.Flags().BoolVarP(&flagHistoryInteractive, "interactive", "i", false, "Browse history in the terminal UI")
	historyCmd.Flags().StringVar(&flagHistoryID, "id", "", "Show the saved rating with this ID")
}

func runHistory(_ *cobra.Command, _ []string) {
	e := mustEnv()

	store, err := storage.Open(e.cfg.DBPath)
	if err != nil {
		exitf("Error opening ratings database: %v\n", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearRatings(flagHistoryOnly); err != nil {
			exitf("Error: %v\n", err)
		}
		e.logger.Info("ratings cleared", "system", flagHistoryOnly)
		return
	}

	if flagHistoryID != "" {
		if _, err := uuid.Parse(flagHistoryID); err != nil {
			exitf("Error: invalid rating ID %q: %v\n", flagHistoryID, err)
		}
		r, err := store.RatingByID(flagHistoryID)
		if err != nil {
			exitf("Error retrieving rating: %v\n", err)
		}
		if r == nil {
			exitf("Error: no rating with ID %s\n", flagHistoryID)
		}
		fmt.Println(tui.RenderRating(*r))
		return
	}

	if flagHistoryInteractive {
		width, height := termSize()
		if err := tui.RunHistory(store, width, height); err != nil {
			exitf("Error: %v\n", err)
		}
		return
	}

	var ratings []storage.Rating
	if flagHistoryOnly != "" {
		ratings, err = store.RatingsForSystem(flagHistoryOnly, flagHistoryLimit)
	} else {
		ratings, err = store.RecentRatings(flagHistoryLimit)
	}
	if err != nil {
		exitf("Error retrieving ratings: %v\n", err)
	}

	if len(ratings) == 0 {
		fmt.Println("No ratings saved yet.")
		fmt.Println()
		fmt.Println("Run 'encounter rate <file> --save' to save one.")
		return
	}

	fmt.Printf("  %-16s  %-20s  %-14s  %-11s  %s\n", "When", "Encounter", "System", "Difficulty", "Value")
	fmt.Printf("  %-16s  %-20s  %-14s  %-11s  %s\n", "----", "---------", "------", "----------", "-----")
	for _, r := range ratings {
		fmt.Printf("  %-16s  %-20s  %-14s  %-11s  %s %s\n",
			humanize.Time(r.CreatedAt),
			r.Encounter,
			r.SystemID,
			r.DisplayName,
			humanize.Commaf(r.TotalValue),
			r.ValueLabel,
		)
	}
}
