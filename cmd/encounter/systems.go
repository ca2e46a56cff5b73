package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/encounter-tracker/internal/registry"
)

var systemsCmd = &cobra.Command{
	Use:   "systems",
	Short: "List all available rule systems",
	Long:  `Shows every registered rule system with its difficulty bands.`,
	Run:   runSystems,
}

func runSystems(_ *cobra.Command, _ []string) {
	systems := registry.List()

	if len(systems) == 0 {
		fmt.Println("No systems available.")
		return
	}

	fmt.Println("Available systems:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, s := range systems {
		maxIDLen = max(maxIDLen, len(s.ID))
		maxTitleLen = max(maxTitleLen, len(s.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Difficulties")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "------------")

	for _, s := range systems {
		sys, err := registry.Create(s.ID, nil)
		if err != nil {
			continue
		}
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, s.ID, maxTitleLen, s.Title,
			strings.Join(sys.SystemDifficulties(), ", "))
	}

	fmt.Println()
	fmt.Println("Run 'encounter rate <file> --system <id>' to rate an encounter.")
}
