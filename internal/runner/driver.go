// Package runner drives an engine to completion. The loop is plain
// sequential code: advance one fixed step, drain finished trips into the
// ledger, then evaluate halt conditions in registration order. Nothing
// observes the engine concurrently during a run.
package runner

import (
	"fmt"

	"github.com/mwebber/citysim/internal/clock"
	"github.com/mwebber/citysim/internal/sim"
)

// StepSize is the fixed advancement quantum of the driver loop.
const StepSize = clock.Duration(30)

type HaltKind int

const (
	// HaltTimeBound stops the run once the clock reaches At.
	HaltTimeBound HaltKind = iota
	// HaltSaveAt persists a savestate under SaveDir once the clock
	// reaches At, then stops.
	HaltSaveAt
	// HaltAlways stops after the first step; useful for single-stepping.
	HaltAlways
	// HaltCustom defers to a caller-supplied predicate.
	HaltCustom
)

// HaltCondition is one entry in the driver's stop list. The variant is a
// closed set so the loop can be matched exhaustively; Custom is the only
// escape hatch and carries its predicate openly rather than as hidden
// captured state.
type HaltCondition struct {
	Kind    HaltKind
	At      clock.Tick
	SaveDir string
	Check   func(*sim.Engine) (bool, error)
}

func TimeBound(at clock.Tick) HaltCondition {
	return HaltCondition{Kind: HaltTimeBound, At: at}
}

func SaveAt(at clock.Tick, saveDir string) HaltCondition {
	return HaltCondition{Kind: HaltSaveAt, At: at, SaveDir: saveDir}
}

func Always() HaltCondition {
	return HaltCondition{Kind: HaltAlways}
}

func Custom(check func(*sim.Engine) (bool, error)) HaltCondition {
	return HaltCondition{Kind: HaltCustom, Check: check}
}

func (c *HaltCondition) eval(e *sim.Engine) (bool, error) {
	switch c.Kind {
	case HaltTimeBound:
		return e.Time() >= c.At, nil
	case HaltSaveAt:
		if e.Time() < c.At {
			return false, nil
		}
		// The save happens between committed steps, never mid-advance,
		// and must complete before the loop continues. A failed save is
		// a failed run, not a silently unsaved one.
		path, err := e.Save(c.SaveDir)
		if err != nil {
			return false, fmt.Errorf("savestate at %s: %w", e.Time(), err)
		}
		fmt.Printf("Saved %s\n", path)
		return true, nil
	case HaltAlways:
		return true, nil
	case HaltCustom:
		if c.Check == nil {
			return false, fmt.Errorf("custom halt condition without a predicate")
		}
		return c.Check(e)
	default:
		return false, fmt.Errorf("unrecognized halt condition kind %d", c.Kind)
	}
}

// RunUntilDone advances the engine until it reports completion or a halt
// condition requests stop. There is no implicit time limit: a scenario
// with perpetual demand needs a TimeBound condition from the caller or
// the loop will not terminate.
func RunUntilDone(e *sim.Engine, ledger *sim.TripLedger, conds []HaltCondition) error {
	for !e.Done() {
		e.Advance(StepSize)
		for _, t := range e.CollectFinishedTrips() {
			ledger.Record(t)
		}
		for i := range conds {
			stop, err := conds[i].eval(e)
			if err != nil {
				return err
			}
			if stop {
				return nil
			}
		}
	}
	return nil
}
