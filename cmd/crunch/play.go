package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cookie-crunch/internal/core"
	"github.com/vovakirdan/cookie-crunch/internal/platform/tui"
	"github.com/vovakirdan/cookie-crunch/internal/registry"
	"github.com/vovakirdan/cookie-crunch/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Play a level",
	Long: `Start playing the specified level.

Controls:
  Arrows/WASD  - Move the cursor
  Space/Enter  - Pick a cookie, then a direction to swap it
  H            - Show a hint
  X            - Shuffle the board (costs a move)
  P            - Pause
  R            - Restart
  Esc/B        - Drop the selection, or go back when the level is over
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Five cookie kinds and 5 extra moves
  normal - Six cookie kinds, the level's own moves
  hard   - Seven cookie kinds and 3 fewer moves
  fixed  - Exactly what the config file says

Examples:
  crunch play level_0
  crunch play level_2 --difficulty hard
  crunch play level_0 --seed 42
  crunch play level_1 --config ./my-crunch.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

// terminalConfig returns a runtime config sized to the terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. The game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	levelID := args[0]

	if !registry.Exists(levelID) {
		exitf("unknown level %q\nRun 'crunch levels' to see available levels.", levelID)
	}

	game, err := registry.Create(levelID)
	if err != nil {
		exitf("cannot create level: %v", err)
	}

	store := openStore()
	_, runErr := tui.Run(game, store, terminalConfig(), tui.Options{Source: "local", Logger: logger})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		exitf("running level: %v", runErr)
	}
}
