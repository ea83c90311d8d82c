package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Map is the road-network summary the engine travels over: cruising speed
// per mode and scheduled headway per transit route. Geometry lives in the
// map-building pipeline, not here.
type Map struct {
	Name          string               `yaml:"name"`
	ModeSpeeds    map[string]float64   `yaml:"mode_speeds"`    // meters per second
	RouteHeadways map[string]int64     `yaml:"route_headways"` // seconds between vehicles
	Fixes         *MapFixes            `yaml:"fixes,omitempty"`
}

// MapFixes are correctness corrections shipped alongside a map. Baseline
// recording always applies them so the reference run is over the fixed
// network.
type MapFixes struct {
	ModeSpeeds    map[string]float64 `yaml:"mode_speeds,omitempty"`
	RouteHeadways map[string]int64   `yaml:"route_headways,omitempty"`
}

// LoadMap reads and validates a map file.
func LoadMap(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map %s: %w", path, err)
	}
	var m Map
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing map %s: %w", path, err)
	}
	if err := validateMap(&m); err != nil {
		return nil, fmt.Errorf("invalid map %s: %w", path, err)
	}
	return &m, nil
}

func validateMap(m *Map) error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(m.ModeSpeeds) == 0 {
		return fmt.Errorf("mode_speeds is required")
	}
	for mode, speed := range m.ModeSpeeds {
		if _, err := ParseMode(mode); err != nil {
			return err
		}
		if speed <= 0 {
			return fmt.Errorf("mode %s: speed must be positive", mode)
		}
	}
	for route, headway := range m.RouteHeadways {
		if headway <= 0 {
			return fmt.Errorf("route %s: headway must be positive", route)
		}
	}
	return nil
}

// ApplyFixes overlays the map's fix block onto its base values. Calling it
// on a map without fixes is a no-op.
func (m *Map) ApplyFixes() {
	if m.Fixes == nil {
		return
	}
	for mode, speed := range m.Fixes.ModeSpeeds {
		m.ModeSpeeds[mode] = speed
	}
	for route, headway := range m.Fixes.RouteHeadways {
		if m.RouteHeadways == nil {
			m.RouteHeadways = map[string]int64{}
		}
		m.RouteHeadways[route] = headway
	}
}

// Speed returns the cruising speed for a mode, or an error for a mode the
// map does not cover.
func (m *Map) Speed(mode TripMode) (float64, error) {
	speed, ok := m.ModeSpeeds[string(mode)]
	if !ok {
		return 0, fmt.Errorf("map %s: no speed for mode %s", m.Name, mode)
	}
	return speed, nil
}

// Headway returns the scheduled gap between vehicles on a transit route.
func (m *Map) Headway(route string) (int64, error) {
	h, ok := m.RouteHeadways[route]
	if !ok {
		return 0, fmt.Errorf("map %s: no headway for route %s", m.Name, route)
	}
	return h, nil
}
