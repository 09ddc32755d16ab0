// Package config provides YAML-based configuration loading and difficulty
// presets for Cookie Crunch.
package config

// CrunchConfig contains all tunable game parameters.
type CrunchConfig struct {
	Board     BoardConfig     `yaml:"board"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Animation AnimationConfig `yaml:"animation"`
}

// BoardConfig defines grid and fill parameters.
type BoardConfig struct {
	Columns         int `yaml:"columns"`
	Rows            int `yaml:"rows"`
	CookieTypes     int `yaml:"cookie_types"`
	ShuffleAttempts int `yaml:"shuffle_attempts"`
	ExtraMoves      int `yaml:"extra_moves"` // added to every level's move allowance
}

// ScoringConfig defines chain scoring.
type ScoringConfig struct {
	ChainBase     int  `yaml:"chain_base"`      // score of a 3-chain at combo 1
	ComboStep     int  `yaml:"combo_step"`      // multiplier growth per cascade
	ComboPerChain bool `yaml:"combo_per_chain"` // grow after every chain instead of every pass
}

// AnimationConfig defines how many ticks the terminal presenter spends on
// each kind of transition.
type AnimationConfig struct {
	SwapTicks    int `yaml:"swap_ticks"`
	MatchTicks   int `yaml:"match_ticks"`
	FallTicks    int `yaml:"fall_ticks"`
	SpawnTicks   int `yaml:"spawn_ticks"`
	ShuffleTicks int `yaml:"shuffle_ticks"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty validates a preset name. An empty name means normal.
func ParseDifficulty(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", &ValidationError{Field: "difficulty", Message: "unknown preset " + name + " (use easy, normal, hard or fixed)"}
	}
}

// IsFixedPreset returns true if the preset leaves the loaded config as is.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
