// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Size      YAMLSize          `yaml:"size"`
	TileKinds int               `yaml:"tile_kinds,omitempty"`
	Goal      YAMLGoal          `yaml:"goal"`
	Layout    []string          `yaml:"layout,omitempty"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLGoal is what the player must reach and the budget to reach it.
type YAMLGoal struct {
	Score int `yaml:"score"`
	Moves int `yaml:"moves"`
}

// Level represents a parsed level ready for validation.
type Level struct {
	ID          string
	Name        string
	Width       int
	Height      int
	TileKinds   int
	TargetScore int
	MoveLimit   int
	Layout      []string
	Metadata    map[string]string
}

// DefaultTileKinds is used when a level file does not name a count.
const DefaultTileKinds = 6

// ParseYAML parses a YAML level file. Layout rows are trimmed; size
// defaults to the layout's dimensions when omitted.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	kinds := yl.TileKinds
	if kinds <= 0 {
		kinds = DefaultTileKinds
	}

	level := Level{
		ID:          strings.TrimSpace(yl.ID),
		Name:        yl.Name,
		Width:       yl.Size.W,
		Height:      yl.Size.H,
		TileKinds:   kinds,
		TargetScore: yl.Goal.Score,
		MoveLimit:   yl.Goal.Moves,
		Metadata:    yl.Metadata,
	}

	for _, row := range yl.Layout {
		level.Layout = append(level.Layout, strings.TrimSpace(row))
	}
	if len(level.Layout) > 0 {
		if level.Height == 0 {
			level.Height = len(level.Layout)
		}
		if level.Width == 0 {
			level.Width = len([]rune(level.Layout[0]))
		}
	}

	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
