package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwebber/citysim/internal/clock"
	"github.com/mwebber/citysim/internal/config"
	"github.com/mwebber/citysim/internal/report"
	"github.com/mwebber/citysim/internal/result"
	"github.com/mwebber/citysim/internal/runner"
	"github.com/mwebber/citysim/internal/sim"
	"github.com/mwebber/citysim/internal/stats"
)

var (
	flagLoad         string
	flagRngSeed      int64
	flagSaveAt       string
	flagBigSim       bool
	flagScenarioName string
)

func newHeadlessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "headless",
		Short: "Run a simulation to completion and record outcomes",
		RunE:  runHeadless,
	}
	cmd.Flags().StringVar(&flagLoad, "load", "", "map, scenario, or savestate to load (required)")
	cmd.Flags().Int64Var(&flagRngSeed, "rng-seed", -1, "RNG seed; omit for a nondeterministic exploratory run")
	cmd.Flags().StringVar(&flagSaveAt, "save-at", "", "time to savestate and stop (hh:mm:ss)")
	cmd.Flags().BoolVar(&flagBigSim, "big-sim", false, "use the big built-in demand profile")
	cmd.Flags().StringVar(&flagScenarioName, "scenario-name", "headless", "scenario name for savestate files")
	cmd.MarkFlagRequired("load")
	return cmd
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Parse --save-at up front: unparsable text is a configuration error,
	// not something to discover mid-run.
	var saveAt *clock.Tick
	if flagSaveAt != "" {
		t, err := clock.Parse(flagSaveAt)
		if err != nil {
			return fmt.Errorf("--save-at: %w", err)
		}
		saveAt = &t
	}

	fl := sim.Flags{
		Load:         flagLoad,
		ScenarioName: flagScenarioName,
		UseMapFixes:  true,
		BigSim:       flagBigSim,
		MapsDir:      cfg.MapsDir,
	}
	if flagRngSeed >= 0 {
		seed := uint64(flagRngSeed)
		fl.RngSeed = &seed
	}

	e, err := sim.Initialize(fl)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %s (map %s, scenario %s, %d trips pending)\n",
		flagLoad, e.Map().Name, e.ScenarioName(), e.PendingTrips())

	var conds []runner.HaltCondition
	if saveAt != nil {
		conds = append(conds, runner.SaveAt(*saveAt, cfg.SavesDir()))
	}

	ledger := sim.NewLedger()
	if err := runner.RunUntilDone(e, ledger, conds); err != nil {
		return err
	}
	fmt.Printf("Stopped at %s with %d completed trips\n", e.Time(), ledger.Len())

	runDir, err := result.CreateRunDir(cfg.ResultsDir)
	if err != nil {
		return err
	}
	rs := &result.RunStats{
		ByMode:     stats.Aggregate(ledger),
		RouteWaits: map[string]int64{},
		Badness:    e.Badness(),
	}
	for route, wait := range e.RouteWaits() {
		rs.RouteWaits[route] = wait.Seconds()
	}
	meta := &result.RunMeta{
		Scenario:  e.ScenarioName(),
		Map:       e.Map().Name,
		Seed:      e.Seed(),
		Seeded:    e.Seeded(),
		FinalTick: e.Time().Format(),
		Trips:     ledger.Len(),
		Badness:   e.Badness(),
	}
	if err := result.WriteLedger(runDir, ledger); err != nil {
		return err
	}
	if err := result.WriteStats(runDir, rs); err != nil {
		return err
	}
	if err := result.WriteRunMeta(runDir, meta); err != nil {
		return err
	}
	fmt.Printf("Run directory: %s\n\n", runDir)

	return report.Generate(runDir, "table", os.Stdout)
}
