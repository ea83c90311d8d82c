package challenge

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mwebber/citysim/internal/scenario"
	"github.com/mwebber/citysim/internal/stats"
)

// PrebakedResults is the persisted baseline for one map: per-mode trip
// statistics and per-route average boarding waits from the reference
// scenario run. The map name is carried in the file so evaluation can
// never read another map's baseline by mistake.
type PrebakedResults struct {
	MapName    string                            `yaml:"map"`
	Scenario   string                            `yaml:"scenario"`
	Seed       uint64                            `yaml:"seed"`
	ByMode     map[scenario.TripMode]stats.Stats `yaml:"modes"`
	RouteWaits map[string]int64                  `yaml:"route_waits_s,omitempty"`
}

// BaselinePath is the well-known location of a map's baseline.
func BaselinePath(dataDir, mapName string) string {
	return filepath.Join(dataDir, "prebaked", mapName+".yaml")
}

func WriteBaseline(dataDir string, pr *PrebakedResults) error {
	path := BaselinePath(dataDir, pr.MapName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating baseline dir: %w", err)
	}
	data, err := yaml.Marshal(pr)
	if err != nil {
		return fmt.Errorf("marshaling baseline: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func LoadBaseline(dataDir, mapName string) (*PrebakedResults, error) {
	path := BaselinePath(dataDir, mapName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading baseline %s: %w", path, err)
	}
	var pr PrebakedResults
	if err := yaml.Unmarshal(data, &pr); err != nil {
		return nil, fmt.Errorf("parsing baseline %s: %w", path, err)
	}
	if pr.MapName != mapName {
		return nil, fmt.Errorf("baseline %s is for map %s", path, pr.MapName)
	}
	return &pr, nil
}
