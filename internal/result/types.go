package result

import (
	"github.com/mwebber/citysim/internal/scenario"
	"github.com/mwebber/citysim/internal/stats"
)

// RunMeta describes one completed (or halted) headless run.
type RunMeta struct {
	Scenario  string `json:"scenario"`
	Map       string `json:"map"`
	Seed      uint64 `json:"seed"`
	Seeded    bool   `json:"seeded"`
	FinalTick string `json:"final_tick"`
	Trips     int    `json:"trips"`
	Badness   int    `json:"badness"`
}

// RunStats is the aggregated outcome of a run: per-mode duration summary
// plus average boarding wait per transit route and the congestion badness
// measure. It is the input challenge scoring reads back.
type RunStats struct {
	ByMode     map[scenario.TripMode]stats.Stats `yaml:"modes"`
	RouteWaits map[string]int64                  `yaml:"route_waits_s,omitempty"`
	Badness    int                               `yaml:"badness"`
}
