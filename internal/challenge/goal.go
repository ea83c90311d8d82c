// Package challenge defines the scored objectives catalog, baseline
// recording, and pass/fail evaluation of a run against a baseline.
package challenge

import (
	"fmt"

	"github.com/mwebber/citysim/internal/clock"
	"github.com/mwebber/citysim/internal/scenario"
)

type GoalKind int

const (
	// GoalReduceMedianBy passes when the current median trip duration for
	// a mode beats the baseline median by at least By.
	GoalReduceMedianBy GoalKind = iota
	// GoalReduceAverageWaitBy passes when a route's average boarding wait
	// beats the baseline by at least By.
	GoalReduceAverageWaitBy
	// GoalIncreaseBadnessAbove passes when the run's badness measure
	// exceeds Threshold. No baseline is consulted.
	GoalIncreaseBadnessAbove
)

// Goal is the structured pass/fail criterion of a challenge. Thresholds
// live here, not in the prose description, so the evaluator never has to
// re-derive intent from text.
type Goal struct {
	Kind      GoalKind
	Mode      scenario.TripMode // ReduceMedianBy
	Route     string            // ReduceAverageWaitBy
	By        clock.Duration    // both reduction goals
	Threshold int               // IncreaseBadnessAbove
}

func ReduceMedianBy(mode scenario.TripMode, by clock.Duration) Goal {
	return Goal{Kind: GoalReduceMedianBy, Mode: mode, By: by}
}

func ReduceAverageWaitBy(route string, by clock.Duration) Goal {
	return Goal{Kind: GoalReduceAverageWaitBy, Route: route, By: by}
}

func IncreaseBadnessAbove(threshold int) Goal {
	return Goal{Kind: GoalIncreaseBadnessAbove, Threshold: threshold}
}

func (g Goal) String() string {
	switch g.Kind {
	case GoalReduceMedianBy:
		return fmt.Sprintf("reduce median %s trip time by %s", g.Mode, g.By)
	case GoalReduceAverageWaitBy:
		return fmt.Sprintf("reduce average wait on route %s by %s", g.Route, g.By)
	case GoalIncreaseBadnessAbove:
		return fmt.Sprintf("push badness above %d", g.Threshold)
	default:
		return fmt.Sprintf("unknown goal kind %d", g.Kind)
	}
}
