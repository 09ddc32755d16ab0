// Package formats provides level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
// tiles is indexed [row][column], row 0 at the top; non-zero marks a
// playable tile.
type YAMLLevel struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	TargetScore int               `yaml:"target_score"`
	Moves       int               `yaml:"moves"`
	Tiles       [][]int           `yaml:"tiles"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// JSONLevel is the camel-cased layout used by the classic level files.
// JSON is valid YAML, so it is decoded with the same parser.
type JSONLevel struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	TargetScore int               `yaml:"targetScore"`
	Moves       int               `yaml:"moves"`
	Tiles       [][]int           `yaml:"tiles"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// Level represents a parsed level ready for validation.
type Level struct {
	ID          string
	Name        string
	TargetScore int
	Moves       int
	Tiles       [][]bool
	Metadata    map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return Level{
		ID:          yl.ID,
		Name:        yl.Name,
		TargetScore: yl.TargetScore,
		Moves:       yl.Moves,
		Tiles:       toTiles(yl.Tiles),
		Metadata:    yl.Metadata,
	}, nil
}

// ParseJSON parses a classic JSON level file.
func ParseJSON(data []byte) (Level, error) {
	var jl JSONLevel
	if err := yaml.Unmarshal(data, &jl); err != nil {
		return Level{}, fmt.Errorf("json unmarshal: %w", err)
	}
	return Level{
		ID:          jl.ID,
		Name:        jl.Name,
		TargetScore: jl.TargetScore,
		Moves:       jl.Moves,
		Tiles:       toTiles(jl.Tiles),
		Metadata:    jl.Metadata,
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".json"}
}

func toTiles(rows [][]int) [][]bool {
	tiles := make([][]bool, len(rows))
	for r, row := range rows {
		tiles[r] = make([]bool, len(row))
		for c, v := range row {
			tiles[r][c] = v != 0
		}
	}
	return tiles
}
