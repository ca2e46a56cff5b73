// encounter rates tabletop RPG encounters under pluggable rule systems.
//
// Usage:
//
//	encounter systems                - List available rule systems
//	encounter rate <file>            - Rate an encounter file
//	encounter thresholds             - Show difficulty thresholds for a party
//	encounter creature <name>        - Rate one bestiary creature under every system
//	encounter pick <file>            - Compare systems interactively
//	encounter serve <file>           - Start SSH server with the picker
//	encounter history                - Show saved ratings
//
// Global flags:
//
//	--config <path>    - Config file (default: search ~/.encounter, ./configs)
//	--system <id>      - Rule system to use
//	--party <levels>   - Party levels, e.g. 5,5,4,6
//	--bestiary <path>  - Bestiary file or directory
//	--db <path>        - Ratings database path
//	--verbose          - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/encounter-tracker/internal/bestiary"
	"github.com/vovakirdan/encounter-tracker/internal/config"
	"github.com/vovakirdan/encounter-tracker/internal/core"
	"github.com/vovakirdan/encounter-tracker/internal/encounter"
	"github.com/vovakirdan/encounter-tracker/internal/registry"

	// Import systems to register them
	_ "github.com/vovakirdan/encounter-tracker/internal/systems/dnd5e"
	_ "github.com/vovakirdan/encounter-tracker/internal/systems/lazygm"
	_ "github.com/vovakirdan/encounter-tracker/internal/systems/pf2e"
)

var (
	// Global flags
	flagConfig   string
	flagSystem   string
	flagParty    []int
	flagBestiary string
	flagDBPath   string
	flagVerbose  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "encounter",
	Short: "Encounter difficulty calculator for tabletop RPGs",
	Long: `encounter rates a group of creatures against a party of player
characters under one of several rule systems.

Available commands:
  systems     - Show all available rule systems
  rate        - Rate an encounter file
  thresholds  - Show difficulty thresholds for a party
  creature    - Rate a single bestiary creature
  pick        - Interactive system picker
  serve       - Start SSH server with the picker
  history     - View saved ratings

Examples:
  encounter systems
  encounter rate goblins.yaml --system pf2e
  encounter thresholds --party 5,5,5,5
  encounter pick goblins.yaml
  encounter serve goblins.yaml --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagSystem, "system", "", "Rule system ID (see 'encounter systems')")
	rootCmd.PersistentFlags().IntSliceVar(&flagParty, "party", nil, "Party levels, comma separated")
	rootCmd.PersistentFlags().StringVar(&flagBestiary, "bestiary", "", "Bestiary YAML file or directory")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to ratings database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(systemsCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(thresholdsCmd)
	rootCmd.AddCommand(creatureCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}

// env is the resolved configuration shared by every command.
type env struct {
	cfg    config.Config
	logger *log.Logger
	book   *bestiary.Bestiary
}

// loadEnv loads config, applies flag overrides and loads the bestiary.
func loadEnv() (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	cfg.Apply(config.Overrides{
		System:   flagSystem,
		Party:    flagParty,
		Bestiary: flagBestiary,
		DBPath:   flagDBPath,
		Verbose:  flagVerbose,
	})

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:  cfg.LogLevel(),
		Prefix: "encounter",
	})

	bestiaryPath, err := config.ExpandHome(cfg.Bestiary)
	if err != nil {
		return nil, err
	}
	book, err := bestiary.Load(bestiaryPath)
	if err != nil {
		return nil, fmt.Errorf("loading bestiary: %w", err)
	}
	logger.Debug("bestiary loaded", "creatures", book.Len(), "path", bestiaryPath)

	return &env{cfg: cfg, logger: logger, book: book}, nil
}

// system creates the configured rule system.
func (e *env) system() (registry.RpgSystem, error) {
	if !registry.Exists(e.cfg.System) {
		return nil, fmt.Errorf("unknown system %q, run 'encounter systems' to see available systems", e.cfg.System)
	}
	return registry.Create(e.cfg.System, e.book.Lookup)
}

// party resolves the levels to rate against: --party first, then the
// encounter's own party, then the configured default.
func (e *env) party(enc *encounter.Encounter) core.PlayerLevels {
	if len(flagParty) > 0 {
		return core.PlayerLevels(flagParty)
	}
	if enc != nil && len(enc.Party) > 0 {
		return enc.Party
	}
	return core.PlayerLevels(e.cfg.Party)
}

// mustEnv loads the environment or exits.
func mustEnv() *env {
	e, err := loadEnv()
	if err != nil {
		exitf("Error: %v\n", err)
	}
	return e
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
