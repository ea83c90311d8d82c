package sim

import (
	"fmt"
	"time"

	"github.com/mwebber/citysim/internal/clock"
	"github.com/mwebber/citysim/internal/scenario"
)

// refDay anchors cron schedules to the simulated day. Every run maps tick
// zero to the same instant, so schedule expansion is reproducible.
var refDay = time.Date(2019, time.March, 4, 0, 0, 0, 0, time.UTC)

// Spawn populates the engine with the scenario's demand. All randomness
// comes from the engine's own stream, in rule order, so two engines with
// the same seed and scenario produce identical trip populations.
func Spawn(e *Engine, sc *scenario.Scenario) error {
	if sc.Map != e.Map().Name {
		return fmt.Errorf("scenario %s targets map %s, engine has %s", sc.Name, sc.Map, e.Map().Name)
	}
	for i := range sc.Demand {
		r := &sc.Demand[i]
		mode, err := scenario.ParseMode(r.Mode)
		if err != nil {
			return fmt.Errorf("demand %d: %w", i, err)
		}
		if r.Schedule != "" {
			if err := spawnScheduled(e, r, mode); err != nil {
				return fmt.Errorf("demand %d: %w", i, err)
			}
			continue
		}
		if err := spawnWindow(e, r, mode); err != nil {
			return fmt.Errorf("demand %d: %w", i, err)
		}
	}
	return nil
}

func spawnWindow(e *Engine, r *scenario.DemandRule, mode scenario.TripMode) error {
	from, to := r.Window()
	for n := 0; n < r.Count; n++ {
		depart := e.stream.TickIn(from, to)
		dist := e.stream.Int64In(r.MinDistanceM, r.MaxDistanceM)
		if err := e.ScheduleTrip(mode, r.Route, depart, dist); err != nil {
			return err
		}
	}
	return nil
}

// spawnScheduled expands a cron rule over the simulated day, spawning
// Count trips at each occurrence.
func spawnScheduled(e *Engine, r *scenario.DemandRule, mode scenario.TripMode) error {
	sched, err := scenario.CronParser.Parse(r.Schedule)
	if err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	dayEnd := refDay.Add(24 * time.Hour)
	for at := sched.Next(refDay); !at.After(dayEnd); at = sched.Next(at) {
		depart := clock.FromSeconds(int64(at.Sub(refDay) / time.Second))
		if depart >= clock.EndOfDay {
			break
		}
		for n := 0; n < r.Count; n++ {
			dist := e.stream.Int64In(r.MinDistanceM, r.MaxDistanceM)
			if err := e.ScheduleTrip(mode, r.Route, depart, dist); err != nil {
				return err
			}
		}
	}
	return nil
}

// SmallSpawn and BigSpawn populate the built-in demand profiles, used
// when a bare map is loaded without a scenario file.

func SmallSpawn(e *Engine) error {
	return Spawn(e, scenario.SmallProfile(e.Map().Name))
}

func BigSpawn(e *Engine) error {
	return Spawn(e, scenario.BigProfile(e.Map().Name))
}
