package challenge

import (
	"fmt"

	"github.com/mwebber/citysim/internal/clock"
	"github.com/mwebber/citysim/internal/scenario"
)

// Challenge is one scored objective over a specific map. Values are
// immutable; new challenges are added here, not registered at runtime.
type Challenge struct {
	ID          string
	Title       string
	Description string
	MapName     string
	Goal        Goal
}

// All returns the static challenge catalog.
func All() []Challenge {
	return []Challenge{
		{
			ID:          "route48-montlake",
			Title:       "Speed up route 48 (just Montlake area)",
			Description: "Decrease the average waiting time between all of route 48's stops by at least 30s",
			MapName:     "montlake",
			Goal:        ReduceAverageWaitBy("48", clock.Seconds(30)),
		},
		{
			ID:          "route48-23rd",
			Title:       "Speed up route 48 (larger section)",
			Description: "Decrease the average waiting time between all of 48's stops by at least 30s",
			MapName:     "23rd",
			Goal:        ReduceAverageWaitBy("48", clock.Seconds(30)),
		},
		{
			ID:          "gridlock-montlake",
			Title:       "Gridlock all of the everything",
			Description: "Make traffic as BAD as possible!",
			MapName:     "montlake",
			Goal:        IncreaseBadnessAbove(100),
		},
		{
			ID:          "faster-bikes-montlake",
			Title:       "Speed up all bike trips",
			Description: "Reduce the 50%ile trip times of bikes by at least 1 minute",
			MapName:     "montlake",
			Goal:        ReduceMedianBy(scenario.ModeBike, clock.Minutes(1)),
		},
		{
			ID:          "faster-cars-montlake",
			Title:       "Speed up all car trips",
			Description: "Reduce the 50%ile trip times of drivers by at least 5 minutes",
			MapName:     "montlake",
			Goal:        ReduceMedianBy(scenario.ModeDrive, clock.Minutes(5)),
		},
	}
}

// ByID looks up a catalog entry; an unknown ID is a reportable error.
func ByID(id string) (Challenge, error) {
	for _, c := range All() {
		if c.ID == id {
			return c, nil
		}
	}
	return Challenge{}, fmt.Errorf("unknown challenge %q", id)
}
