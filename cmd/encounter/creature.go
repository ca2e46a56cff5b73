package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/encounter-tracker/internal/core"
	"github.com/vovakirdan/encounter-tracker/internal/registry"
)

var creatureCmd = &cobra.Command{
	Use:   "creature <name>",
	Short: "Rate a single bestiary creature under every system",
	Long: `Look up a creature in the bestiary and show what it is worth to the
party under each registered system.

Examples:
  encounter creature goblin
  encounter creature "adult red dragon" --party 12,12,13,14`,
	Args: cobra.MinimumNArgs(1),
	Run:  runCreature,
}

func runCreature(_ *cobra.Command, args []string) {
	e := mustEnv()

	name := strings.Join(args, " ")
	block, ok := e.book.Get(name)
	if !ok {
		exitf("Error: %q is not in the bestiary (%d creatures loaded)\n", name, e.book.Len())
	}

	fmt.Println(block.Name)
	if block.Source != "" {
		fmt.Printf("  Source: %s\n", block.Source)
	}
	fmt.Printf("  CR:     %s\n", orUndefined(block.CR))
	fmt.Printf("  Level:  %s\n", orUndefined(block.Level))
	fmt.Println()

	party := e.party(nil)
	creature := &core.Creature{Name: block.Name}
	for _, info := range registry.List() {
		sys, err := registry.Create(info.ID, e.book.Lookup)
		if err != nil {
			continue
		}

		d := sys.CreatureDifficulty(creature, party)
		value := sys.FormatDifficultyValue(d.Contribution(), true)
		if !d.Valid() {
			value += " (" + d.Reason.String() + ")"
		}
		if extra := sys.AdditionalCreatureDifficultyStats(creature, party); len(extra) > 0 {
			value += "  " + strings.Join(extra, ", ")
		}
		fmt.Printf("  %-16s %s\n", info.Title, value)
	}
}

func orUndefined(s string) string {
	if s == "" {
		return core.DefaultUndefined
	}
	return s
}
