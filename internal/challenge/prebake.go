package challenge

import (
	"fmt"

	"github.com/mwebber/citysim/internal/clock"
	"github.com/mwebber/citysim/internal/rng"
	"github.com/mwebber/citysim/internal/runner"
	"github.com/mwebber/citysim/internal/scenario"
	"github.com/mwebber/citysim/internal/sim"
	"github.com/mwebber/citysim/internal/stats"
)

// PrebakeOpts configures one baseline recording. Seed is a pointer on
// purpose: an absent seed is rejected rather than defaulted, because an
// entropy-seeded baseline can never be reproduced for scoring.
type PrebakeOpts struct {
	Map      *scenario.Map
	Scenario *scenario.Scenario
	Seed     *uint64
	DataDir  string
}

// Prebake runs the reference scenario to the end-of-day horizon with map
// fixes applied, aggregates the ledger, and persists the baseline. This
// is a batch, offline operation.
func Prebake(opts PrebakeOpts) (*PrebakedResults, error) {
	if opts.Seed == nil {
		return nil, fmt.Errorf("prebake requires an explicit seed; baselines must be reproducible")
	}
	if opts.Map == nil || opts.Scenario == nil {
		return nil, fmt.Errorf("prebake requires a map and a scenario")
	}

	opts.Map.ApplyFixes()
	e := sim.NewEngine(opts.Map, opts.Scenario.Name, rng.Seeded(*opts.Seed), true)
	if err := sim.Spawn(e, opts.Scenario); err != nil {
		return nil, fmt.Errorf("spawning %s on %s: %w", opts.Scenario.Name, opts.Map.Name, err)
	}

	ledger := sim.NewLedger()
	conds := []runner.HaltCondition{runner.TimeBound(clock.EndOfDay)}
	if err := runner.RunUntilDone(e, ledger, conds); err != nil {
		return nil, fmt.Errorf("baking %s: %w", opts.Map.Name, err)
	}

	pr := &PrebakedResults{
		MapName:    opts.Map.Name,
		Scenario:   opts.Scenario.Name,
		Seed:       *opts.Seed,
		ByMode:     stats.Aggregate(ledger),
		RouteWaits: map[string]int64{},
	}
	for route, wait := range e.RouteWaits() {
		pr.RouteWaits[route] = wait.Seconds()
	}

	if err := WriteBaseline(opts.DataDir, pr); err != nil {
		return nil, err
	}
	return pr, nil
}
