package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RoomSeed is one room definition from room_list.yaml, created at boot.
type RoomSeed struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
}

// RoomSeedTable holds the boot-time room definitions.
type RoomSeedTable struct {
	seeds []RoomSeed
}

// LoadRoomSeeds reads room definitions from a YAML file. A missing file is
// not an error — the world simply starts empty.
func LoadRoomSeeds(path string) (*RoomSeedTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &RoomSeedTable{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var seeds []RoomSeed
	if err := yaml.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &RoomSeedTable{seeds: seeds}, nil
}

func (t *RoomSeedTable) Count() int {
	return len(t.seeds)
}

func (t *RoomSeedTable) All() []RoomSeed {
	return t.seeds
}
