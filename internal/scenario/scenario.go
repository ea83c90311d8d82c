// Package scenario defines the on-disk schema for maps and travel demand:
// who travels, when, and by what mode over a named map. Scenarios and maps
// are YAML files; demand rules are either a departure window or a
// recurring cron schedule evaluated over the simulated day.
package scenario

import (
	"fmt"
	"os"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/mwebber/citysim/internal/clock"
)

// TripMode identifies how an agent travels.
type TripMode string

const (
	ModeWalk    TripMode = "walk"
	ModeBike    TripMode = "bike"
	ModeTransit TripMode = "transit"
	ModeDrive   TripMode = "drive"
)

// Modes lists every known mode in a fixed order.
func Modes() []TripMode {
	return []TripMode{ModeWalk, ModeBike, ModeTransit, ModeDrive}
}

// ParseMode validates a mode name from config or stored results.
func ParseMode(s string) (TripMode, error) {
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown travel mode %q", s)
}

// Scenario is a named, reproducible demand specification over a map.
type Scenario struct {
	Name   string       `yaml:"name"`
	Map    string       `yaml:"map"`
	Demand []DemandRule `yaml:"demand"`
}

// DemandRule spawns Count trips of one mode. Exactly one of the departure
// window (From/To) or the cron Schedule must be set; a scheduled rule
// spawns Count trips at every occurrence within the simulated day.
type DemandRule struct {
	Mode     string `yaml:"mode"`
	Count    int    `yaml:"count"`
	Route    string `yaml:"route,omitempty"` // transit rules only
	From     string `yaml:"depart_from,omitempty"`
	To       string `yaml:"depart_to,omitempty"`
	Schedule string `yaml:"schedule,omitempty"`

	MinDistanceM int64 `yaml:"min_distance_m"`
	MaxDistanceM int64 `yaml:"max_distance_m"`
}

// CronParser accepts standard 5-field cron expressions for demand rules.
var CronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if err := validate(&sc); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &sc, nil
}

func validate(sc *Scenario) error {
	if sc.Name == "" {
		return fmt.Errorf("name is required")
	}
	if sc.Map == "" {
		return fmt.Errorf("map is required")
	}
	for i := range sc.Demand {
		r := &sc.Demand[i]
		if _, err := ParseMode(r.Mode); err != nil {
			return fmt.Errorf("demand %d: %w", i, err)
		}
		if r.Count <= 0 {
			return fmt.Errorf("demand %d: count must be positive", i)
		}
		hasWindow := r.From != "" || r.To != ""
		hasSchedule := r.Schedule != ""
		if hasWindow == hasSchedule {
			return fmt.Errorf("demand %d: exactly one of depart window or schedule is required", i)
		}
		if hasWindow {
			from, err := clock.Parse(r.From)
			if err != nil {
				return fmt.Errorf("demand %d: depart_from: %w", i, err)
			}
			to, err := clock.Parse(r.To)
			if err != nil {
				return fmt.Errorf("demand %d: depart_to: %w", i, err)
			}
			if to < from {
				return fmt.Errorf("demand %d: depart_to is before depart_from", i)
			}
		}
		if hasSchedule {
			if _, err := CronParser.Parse(r.Schedule); err != nil {
				return fmt.Errorf("demand %d: schedule: %w", i, err)
			}
		}
		if r.MaxDistanceM < r.MinDistanceM {
			return fmt.Errorf("demand %d: max_distance_m is below min_distance_m", i)
		}
		if r.Mode == string(ModeTransit) && r.Route == "" {
			return fmt.Errorf("demand %d: transit rules require a route", i)
		}
	}
	return nil
}

// Window returns the parsed departure window of a rule. Valid only after
// validation has accepted the rule.
func (r *DemandRule) Window() (clock.Tick, clock.Tick) {
	from, _ := clock.Parse(r.From)
	to, _ := clock.Parse(r.To)
	return from, to
}
