package config

import (
	_ "embed"
)

//go:embed defaults/crunch.yaml
var defaultCrunchYAML []byte

// DefaultCrunchConfig returns the default configuration.
func DefaultCrunchConfig() CrunchConfig {
	return CrunchConfig{
		Board: BoardConfig{
			Columns:         9,
			Rows:            9,
			CookieTypes:     6,
			ShuffleAttempts: 100,
		},
		Scoring: ScoringConfig{
			ChainBase: 60,
			ComboStep: 1,
		},
		Animation: AnimationConfig{
			SwapTicks:    4,
			MatchTicks:   6,
			FallTicks:    4,
			SpawnTicks:   4,
			ShuffleTicks: 8,
		},
	}
}
