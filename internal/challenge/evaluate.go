package challenge

import (
	"fmt"

	"github.com/mwebber/citysim/internal/clock"
	"github.com/mwebber/citysim/internal/result"
)

// Verdict is the outcome of scoring one run against a challenge.
type Verdict struct {
	Pass   bool
	Reason string
}

func pass(format string, args ...any) Verdict {
	return Verdict{Pass: true, Reason: fmt.Sprintf(format, args...)}
}

func fail(format string, args ...any) Verdict {
	return Verdict{Pass: false, Reason: fmt.Sprintf(format, args...)}
}

// Evaluate scores a run's aggregated stats against a challenge. The
// baseline must belong to the challenge's own map; gridlock goals take a
// nil baseline. An unrecognized goal kind is an error, never a panic.
func Evaluate(ch Challenge, current *result.RunStats, baseline *PrebakedResults) (Verdict, error) {
	if current == nil {
		return Verdict{}, fmt.Errorf("challenge %s: no run statistics", ch.ID)
	}

	switch ch.Goal.Kind {
	case GoalReduceMedianBy:
		base, err := requireBaseline(ch, baseline)
		if err != nil {
			return Verdict{}, err
		}
		baseStats, ok := base.ByMode[ch.Goal.Mode]
		if !ok {
			return Verdict{}, fmt.Errorf("challenge %s: baseline for %s has no %s trips", ch.ID, ch.MapName, ch.Goal.Mode)
		}
		curStats, ok := current.ByMode[ch.Goal.Mode]
		if !ok {
			return fail("no completed %s trips this run", ch.Goal.Mode), nil
		}
		target := clock.Duration(int64(baseStats.P50) - int64(ch.Goal.By))
		if curStats.P50 <= target {
			return pass("median %s trip %s beats baseline %s by at least %s",
				ch.Goal.Mode, curStats.P50, baseStats.P50, ch.Goal.By), nil
		}
		return fail("median %s trip %s, needed %s or better (baseline %s minus %s)",
			ch.Goal.Mode, curStats.P50, target, baseStats.P50, ch.Goal.By), nil

	case GoalReduceAverageWaitBy:
		base, err := requireBaseline(ch, baseline)
		if err != nil {
			return Verdict{}, err
		}
		baseWait, ok := base.RouteWaits[ch.Goal.Route]
		if !ok {
			return Verdict{}, fmt.Errorf("challenge %s: baseline for %s has no route %s", ch.ID, ch.MapName, ch.Goal.Route)
		}
		curWait, ok := current.RouteWaits[ch.Goal.Route]
		if !ok {
			return fail("no boardings observed on route %s this run", ch.Goal.Route), nil
		}
		target := baseWait - ch.Goal.By.Seconds()
		if curWait <= target {
			return pass("average wait on route %s is %s, baseline %s",
				ch.Goal.Route, clock.Seconds(curWait), clock.Seconds(baseWait)), nil
		}
		return fail("average wait on route %s is %s, needed %s or better",
			ch.Goal.Route, clock.Seconds(curWait), clock.Seconds(target)), nil

	case GoalIncreaseBadnessAbove:
		// Explicitly a different evaluation shape: no baseline involved.
		if current.Badness > ch.Goal.Threshold {
			return pass("badness %d exceeds %d", current.Badness, ch.Goal.Threshold), nil
		}
		return fail("badness %d, needed more than %d", current.Badness, ch.Goal.Threshold), nil

	default:
		return Verdict{}, fmt.Errorf("challenge %s: unrecognized goal kind %d", ch.ID, ch.Goal.Kind)
	}
}

func requireBaseline(ch Challenge, baseline *PrebakedResults) (*PrebakedResults, error) {
	if baseline == nil {
		return nil, fmt.Errorf("challenge %s: no baseline recorded for map %s", ch.ID, ch.MapName)
	}
	if baseline.MapName != ch.MapName {
		return nil, fmt.Errorf("challenge %s targets map %s but baseline is for %s", ch.ID, ch.MapName, baseline.MapName)
	}
	return baseline, nil
}
