package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cookie-crunch/internal/games/crunch"
	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/session"
	"github.com/vovakirdan/cookie-crunch/internal/registry"
	"github.com/vovakirdan/cookie-crunch/internal/storage"
)

var (
	flagSimTurns  int
	flagSimRandom bool
	flagSimSave   bool
	flagSimJSON   bool
)

var simCmd = &cobra.Command{
	Use:   "sim <level>",
	Short: "Let the computer play a level",
	Long: `Play a level without a terminal UI. Every turn takes the first legal
swap (the one a hint would show), or a random one with --random.

Run with --log-level debug to see every event.

Examples:
  crunch sim level_0 --seed 7
  crunch sim endless --turns 200 --random
  crunch sim level_3 --save --json`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTurns, "turns", 1000, "Stop after this many turns")
	simCmd.Flags().BoolVar(&flagSimRandom, "random", false, "Pick a random legal swap each turn")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the result in the scores database")
	simCmd.Flags().BoolVar(&flagSimJSON, "json", false, "Print the summary as JSON")
}

// simReport is the printed outcome of a simulated game.
type simReport struct {
	Level      string `json:"level"`
	Seed       int64  `json:"seed"`
	RunID      string `json:"run_id,omitempty"`
	Turns      int    `json:"turns"`
	Score      int    `json:"score"`
	MovesUsed  int    `json:"moves_used"`
	Cascades   int    `json:"cascades"`
	Reshuffles int    `json:"reshuffles"`
	BestCombo  int    `json:"best_combo"`
	Won        bool   `json:"won"`
	Over       bool   `json:"over"`
}

func runSim(_ *cobra.Command, args []string) {
	levelID := args[0]

	game, err := registry.Create(levelID)
	if err != nil {
		exitf("unknown level %q\nRun 'crunch levels' to see available levels.", levelID)
	}
	cg, ok := game.(*crunch.Game)
	if !ok {
		exitf("%q is not a Cookie Crunch level", levelID)
	}
	lvl := cg.Level()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	board, err := lvl.NewBoard(crunch.LoadConfig(), rng)
	if err != nil {
		exitf("%v", err)
	}
	sess := session.New(board)
	if _, err := sess.Begin(); err != nil {
		exitf("%v", err)
	}

	var pick session.Picker
	if flagSimRandom {
		pick = session.RandomPicker(rng)
	}
	simLog := logger.With("level", levelID, "seed", seed)
	observe := func(turn int, events []session.Event) {
		for _, ev := range events {
			simLog.Debug("event", "turn", turn, "kind", ev.Kind, "points", ev.Points, "score", ev.State.Score)
		}
	}

	sum, err := session.Autoplay(sess, flagSimTurns, pick, observe)
	if err != nil {
		exitf("simulation stopped: %v", err)
	}

	report := simReport{
		Level:      levelID,
		Seed:       seed,
		Turns:      sum.Turns,
		Score:      sum.Score,
		MovesUsed:  sum.MovesUsed,
		Cascades:   sum.Cascades,
		Reshuffles: sum.Reshuffles,
		BestCombo:  sum.BestCombo,
		Won:        sum.Won,
		Over:       sum.Over,
	}

	if flagSimSave && sum.MovesUsed > 0 {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			exitf("opening scores database: %v", err)
		}
		report.RunID, err = store.SaveResult(storage.Result{
			LevelID:   levelID,
			Score:     sum.Score,
			MovesUsed: sum.MovesUsed,
			Won:       sum.Won,
			Seed:      seed,
			Source:    "sim",
		})
		store.Close()
		if err != nil {
			exitf("saving result: %v", err)
		}
	}

	if flagSimJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			exitf("%v", err)
		}
		return
	}

	outcome := "in progress"
	switch {
	case sum.Won:
		outcome = "won"
	case sum.Over:
		outcome = "out of moves"
	}

	fmt.Printf("%s (seed %d)\n", game.Title(), seed)
	fmt.Println()
	fmt.Printf("  Result      %s\n", outcome)
	fmt.Printf("  Score       %d\n", sum.Score)
	fmt.Printf("  Turns       %d\n", sum.Turns)
	fmt.Printf("  Moves used  %d\n", sum.MovesUsed)
	fmt.Printf("  Cascades    %d\n", sum.Cascades)
	fmt.Printf("  Reshuffles  %d\n", sum.Reshuffles)
	fmt.Printf("  Best combo  x%d\n", sum.BestCombo)
	if report.RunID != "" {
		fmt.Printf("  Run         %s\n", report.RunID)
	}
}
