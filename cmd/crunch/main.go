// crunch is a terminal match-3 game: swap neighbouring cookies to line up
// three or more of a kind before the moves run out.
//
// Usage:
//
//	crunch levels            - List available levels
//	crunch play <level>      - Play a level
//	crunch menu              - Pick levels interactively
//	crunch sim <level>       - Let the computer play a level
//	crunch scores <level>    - Show high scores for a level
//	crunch serve             - Serve over SSH and websockets
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.crunch/scores.db)
//	--config <path>       - Board, scoring and animation config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--levels <dir>        - Extra level files (YAML or JSON)
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cookie-crunch/internal/config"
	"github.com/vovakirdan/cookie-crunch/internal/games/crunch"
	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/levels"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevels     string
	flagLogLevel   string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "crunch",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "crunch",
	Short: "Cookie Crunch - a match-3 game for your terminal",
	Long: `Cookie Crunch is a match-3 puzzle game. Swap two neighbouring
cookies to line up three or more of the same kind. Reach the target
score before you run out of moves.

Available commands:
  levels   - Show all available levels
  play     - Play a specific level directly
  menu     - Interactive level picker
  sim      - Let the computer play a level
  scores   - View high scores
  serve    - Serve the game over SSH and websockets

Examples:
  crunch levels
  crunch play level_0
  crunch menu --difficulty easy
  crunch sim level_2 --seed 42
  crunch serve --ssh :2222 --ws :8080`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.crunch/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup applies the global flags before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetLevel(level)

	if flagDifficulty != "" {
		if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
			return err
		}
	}
	if flagConfig != "" {
		// fail early instead of silently falling back to defaults
		if _, err := config.LoadCrunch(flagConfig); err != nil {
			return err
		}
	}
	crunch.SetConfigPath(flagConfig)
	crunch.SetDifficultyPreset(flagDifficulty)

	if flagLevels != "" {
		loader := levels.NewLoader(flagLevels).WithLogger(logger)
		added, err := crunch.RegisterLevels(loader, logger)
		if err != nil {
			return fmt.Errorf("cannot load levels from %s: %w", flagLevels, err)
		}
		logger.Debug("registered extra levels", "dir", flagLevels, "count", len(added))
	}
	return nil
}

// exitf prints an error and exits with status 1.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
