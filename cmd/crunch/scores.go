package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cookie-crunch/internal/registry"
	"github.com/vovakirdan/cookie-crunch/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <level>",
	Short: "Show high scores for a level",
	Long: `Display the best results for the specified level.

Examples:
  crunch scores level_0
  crunch scores endless --limit 20`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
}

func runScores(_ *cobra.Command, args []string) {
	levelID := args[0]

	if !registry.Exists(levelID) {
		exitf("unknown level %q\nRun 'crunch levels' to see available levels.", levelID)
	}

	game, err := registry.Create(levelID)
	if err != nil {
		exitf("cannot create level: %v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening scores database: %v", err)
	}
	defer store.Close()

	scores, err := store.TopScores(levelID, flagScoresLimit)
	if err != nil {
		exitf("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'crunch play %s' to set the first high score!\n", levelID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-6s  %s\n", "Rank", "Score", "Moves", "Result", "From", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-6s  %s\n", "----", "-----", "-----", "------", "----", "----")

	for i, entry := range scores {
		result := "lost"
		if entry.Won {
			result = "won"
		}
		fmt.Printf("  %-4d  %-8d  %-5d  %-6s  %-6s  %s\n",
			i+1, entry.Score, entry.MovesUsed, result, entry.Source, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetLevelStats(levelID)
	if err == nil && stats != nil {
		fmt.Println()
		fmt.Printf("Best: %d  Played: %d  Won: %d\n", stats.HighScore, stats.GamesCount, stats.Wins)
	}
}
