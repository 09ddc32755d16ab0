package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "crunch.yaml"

// ValidationError reports an out-of-range configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// LoadCrunch loads the game configuration.
// Search order: customPath -> ~/.crunch/configs/crunch.yaml -> ./configs/crunch.yaml -> embedded default
// Values missing from a file keep their defaults.
func LoadCrunch(customPath string) (CrunchConfig, error) {
	cfg := DefaultCrunchConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(configFile), filepath.Join("configs", configFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fileCfg := DefaultCrunchConfig()
		if err := yaml.Unmarshal(data, &fileCfg); err == nil && fileCfg.Validate() == nil {
			return fileCfg, nil
		}
	}

	// Use embedded default YAML
	embedded := DefaultCrunchConfig()
	if err := yaml.Unmarshal(defaultCrunchYAML, &embedded); err != nil {
		return DefaultCrunchConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".crunch", "configs", filename)
}

// Validate checks that every value is usable by the engine.
func (c CrunchConfig) Validate() error {
	switch {
	case c.Board.Columns < 1 || c.Board.Rows < 1:
		return &ValidationError{Field: "board", Message: fmt.Sprintf("size %dx%d must be positive", c.Board.Columns, c.Board.Rows)}
	case c.Board.CookieTypes < 3 || c.Board.CookieTypes > 8:
		return &ValidationError{Field: "board.cookie_types", Message: fmt.Sprintf("%d not in [3, 8]", c.Board.CookieTypes)}
	case c.Board.ShuffleAttempts < 1:
		return &ValidationError{Field: "board.shuffle_attempts", Message: "must be positive"}
	case c.Scoring.ChainBase < 0:
		return &ValidationError{Field: "scoring.chain_base", Message: "must not be negative"}
	case c.Scoring.ComboStep < 0:
		return &ValidationError{Field: "scoring.combo_step", Message: "must not be negative"}
	}
	return nil
}

// ApplyCrunchPreset modifies the config based on a difficulty preset.
// Fewer cookie types make chains more likely; extra moves loosen every level.
func ApplyCrunchPreset(cfg *CrunchConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Board.CookieTypes = 5
		cfg.Board.ExtraMoves = 5
	case DifficultyNormal:
		cfg.Board.CookieTypes = 6
		cfg.Board.ExtraMoves = 0
	case DifficultyHard:
		cfg.Board.CookieTypes = 7
		cfg.Board.ExtraMoves = -3
	}
}

// MovesFor returns a level's move allowance adjusted by ExtraMoves.
// Zero stays zero (unlimited); limited levels keep at least one move.
func (c CrunchConfig) MovesFor(levelMoves int) int {
	if levelMoves == 0 {
		return 0
	}
	moves := levelMoves + c.Board.ExtraMoves
	if moves < 1 {
		moves = 1
	}
	return moves
}
