package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/encounter-tracker/internal/platform/tui"
)

var thresholdsCmd = &cobra.Command{
	Use:   "thresholds",
	Short: "Show difficulty thresholds for a party",
	Long: `Print the minimum encounter value for each difficulty band of the
selected system, for the party given with --party or the configured default.

Examples:
  encounter thresholds --party 5,5,5,5
  encounter thresholds --system pf2e --party 3,3,3`,
	Args: cobra.NoArgs,
	Run:  runThresholds,
}

func runThresholds(_ *cobra.Command, _ []string) {
	e := mustEnv()

	sys, err := e.system()
	if err != nil {
		exitf("Error: %v\n", err)
	}

	party := e.party(nil)
	fmt.Printf("%s thresholds for party %v (total level %d)\n", sys.Title(), []int(party), party.Total())
	fmt.Println()

	thresholds := sys.DifficultyThresholds(party)
	maxNameLen := 10 // "Difficulty" header
	for _, t := range thresholds {
		maxNameLen = max(maxNameLen, len(t.Name))
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Difficulty", "From")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----------", "----")
	for _, t := range thresholds {
		fmt.Printf("  %-*s  %s\n", maxNameLen, t.Name, tui.FormatBound(t.MinValue))
	}
}
