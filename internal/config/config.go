package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config locates the on-disk layout: maps and scenarios to load,
// and where run artifacts, savestates, and baselines land.
type Config struct {
	MapsDir      string `yaml:"maps_dir"`
	ScenariosDir string `yaml:"scenarios_dir"`
	DataDir      string `yaml:"data_dir"`
	ResultsDir   string `yaml:"results_dir"`
}

func Default() *Config {
	return &Config{
		MapsDir:      "data/maps",
		ScenariosDir: "data/scenarios",
		DataDir:      "data",
		ResultsDir:   "results",
	}
}

// Load reads a config file, filling defaults for absent fields. A missing
// file is not an error; the defaults describe the conventional layout.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.MapsDir == "" {
		return fmt.Errorf("maps_dir is required")
	}
	if cfg.ScenariosDir == "" {
		return fmt.Errorf("scenarios_dir is required")
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if cfg.ResultsDir == "" {
		return fmt.Errorf("results_dir is required")
	}
	return nil
}

// SavesDir is where the driver's save-and-stop condition writes
// savestates.
func (c *Config) SavesDir() string {
	return filepath.Join(c.DataDir, "save")
}

// ScenarioPath locates a named scenario for a map.
func (c *Config) ScenarioPath(mapName, scenarioName string) string {
	return filepath.Join(c.ScenariosDir, mapName, scenarioName+".yaml")
}
