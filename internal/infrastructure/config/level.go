package config

import (
	"errors"
	"fmt"

	"github.com/younwookim/gardengun/internal/ecs"
)

// ErrUnknownEntityType is returned for level entities no populate routine handles
var ErrUnknownEntityType = errors.New("unknown entity type")

// Entity type names as written in level files
const (
	TypePlayer       = "Player"
	TypeGoblin       = "Goblin"
	TypePickableAmmo = "PickableAmmo"
	TypeGate         = "Gate"
	TypeBlock        = "Block"
	TypeFloatingText = "FloatingText"
)

// EntityTypes lists every type a level may contain
var EntityTypes = []string{TypePlayer, TypeGoblin, TypePickableAmmo, TypeGate, TypeBlock, TypeFloatingText}

// LevelIndex is the root of levels/index.yaml
type LevelIndex struct {
	Levels []LevelDescriptor `yaml:"levels"`
}

// LevelDescriptor names one level file
type LevelDescriptor struct {
	Filename string `yaml:"filename"`
}

// LevelConfig is the root of a levels/<name>.yaml file
type LevelConfig struct {
	Entities []EntityConfig `yaml:"entities"`
}

// EntityConfig holds the authored fields of one level entity
type EntityConfig struct {
	Type      string    `yaml:"type"`
	Position  ecs.Vec3  `yaml:"position"`
	PlantType string    `yaml:"plantType,omitempty"`
	GridSize  *GridSize `yaml:"gridSize,omitempty"`
	Text      string    `yaml:"text,omitempty"`
	FontSize  float64   `yaml:"fontSize,omitempty"`
	Barren    bool      `yaml:"barren,omitempty"`
}

type GridSize struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Grid returns the authored grid size, defaulting to one cell
func (e EntityConfig) Grid() ecs.GridSize {
	if e.GridSize == nil || e.GridSize.X < 1 || e.GridSize.Y < 1 {
		return ecs.DefaultGridSize()
	}
	return ecs.GridSize{X: e.GridSize.X, Y: e.GridSize.Y}
}

// Plant returns the authored plant type, defaulting to Tree
func (e EntityConfig) Plant() (ecs.PlantType, error) {
	switch e.PlantType {
	case "", "Tree":
		return ecs.PlantTree, nil
	default:
		return 0, fmt.Errorf("unknown plant type %q", e.PlantType)
	}
}

// Validate checks the type and plant type of every entity
func (l *LevelConfig) Validate() error {
	for i, e := range l.Entities {
		known := false
		for _, t := range EntityTypes {
			if e.Type == t {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("entity %d: %w: %q", i, ErrUnknownEntityType, e.Type)
		}
		if _, err := e.Plant(); err != nil {
			return fmt.Errorf("entity %d: %w", i, err)
		}
	}
	return nil
}
