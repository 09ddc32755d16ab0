package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cookie-crunch/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick levels from an interactive menu",
	Long: `Start Cookie Crunch in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a level.
After a level ends, press Esc to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play level
  Tab/T        - High scores
  Q            - Quit

Examples:
  crunch menu
  crunch menu --fps 60
  crunch menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	err := tui.RunLoop(store, terminalConfig(), tui.Options{Source: "local", Logger: logger})
	if store != nil {
		store.Close()
	}
	if err != nil {
		exitf("%v", err)
	}
}
