package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	var cfg CrunchConfig
	require.NoError(t, yaml.Unmarshal(defaultCrunchYAML, &cfg))
	assert.Equal(t, DefaultCrunchConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadCrunchCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crunch.yaml")
	data := []byte("board:\n  cookie_types: 4\nscoring:\n  chain_base: 100\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadCrunch(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Board.CookieTypes)
	assert.Equal(t, 100, cfg.Scoring.ChainBase)
	// Unset values keep defaults.
	assert.Equal(t, 9, cfg.Board.Columns)
	assert.Equal(t, 1, cfg.Scoring.ComboStep)
}

func TestLoadCrunchErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadCrunch(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("board: [1, 2"), 0o644))
	_, err = LoadCrunch(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("board:\n  cookie_types: 12\n"), 0o644))
	_, err = LoadCrunch(invalid)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "board.cookie_types", verr.Field)
}

func TestApplyCrunchPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		types  int
		extra  int
	}{
		{DifficultyEasy, 5, 5},
		{DifficultyNormal, 6, 0},
		{DifficultyHard, 7, -3},
		{DifficultyFixed, 4, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultCrunchConfig()
			cfg.Board.CookieTypes = 4
			cfg.Board.ExtraMoves = 2
			ApplyCrunchPreset(&cfg, tt.preset)
			assert.Equal(t, tt.types, cfg.Board.CookieTypes)
			assert.Equal(t, tt.extra, cfg.Board.ExtraMoves)
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	p, err := ParseDifficulty("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyNormal, p)

	p, err = ParseDifficulty("hard")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, p)
	assert.False(t, IsFixedPreset(p))

	_, err = ParseDifficulty("insane")
	assert.Error(t, err)
}

func TestMovesFor(t *testing.T) {
	cfg := DefaultCrunchConfig()
	assert.Equal(t, 0, cfg.MovesFor(0))
	assert.Equal(t, 15, cfg.MovesFor(15))

	cfg.Board.ExtraMoves = -20
	assert.Equal(t, 1, cfg.MovesFor(15))
	assert.Equal(t, 0, cfg.MovesFor(0))
}
