package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cookie-crunch/internal/games/crunch"
	"github.com/vovakirdan/cookie-crunch/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:     "levels",
	Aliases: []string{"list"},
	Short:   "List all available levels",
	Long:    `Shows every registered level with its objective.`,
	Run:     runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	infos := registry.List()

	if len(infos) == 0 {
		fmt.Println("No levels available.")
		return
	}

	cfg := crunch.LoadConfig()

	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen, maxTitleLen := 2, 5
	for _, info := range infos {
		maxIDLen = max(maxIDLen, len(info.ID))
		maxTitleLen = max(maxTitleLen, len(info.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Objective")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "---------")

	for _, info := range infos {
		objective := "-"
		if g, err := registry.Create(info.ID); err == nil {
			if cg, ok := g.(*crunch.Game); ok {
				lvl := cg.Level()
				moves := cfg.MovesFor(lvl.Moves)
				switch {
				case lvl.Endless():
					objective = "endless"
				case lvl.TargetScore == 0:
					objective = fmt.Sprintf("%d moves", moves)
				case moves == 0:
					objective = fmt.Sprintf("%d pts", lvl.TargetScore)
				default:
					objective = fmt.Sprintf("%d pts in %d moves", lvl.TargetScore, moves)
				}
			}
		}
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, info.ID, maxTitleLen, info.Title, objective)
	}

	fmt.Println()
	fmt.Println("Run 'crunch play <id>' to play a level.")
}
