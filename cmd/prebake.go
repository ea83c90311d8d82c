package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwebber/citysim/internal/challenge"
	"github.com/mwebber/citysim/internal/config"
	"github.com/mwebber/citysim/internal/runner"
	"github.com/mwebber/citysim/internal/scenario"
	"github.com/mwebber/citysim/internal/sim"
)

var (
	flagPrebakeMap      string
	flagPrebakeScenario string
	flagPrebakeSeed     int64
	flagPrebakeAll      bool
	flagPrebakeParallel int
)

func newPrebakeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prebake",
		Short: "Record challenge baselines from the reference scenario",
		Long: `Run the reference scenario to the end-of-day horizon on each target map
and persist the resulting statistics as the challenge baseline. Requires
an explicit seed; entropy-seeded baselines cannot be reproduced and are
rejected.`,
		RunE: runPrebake,
	}
	cmd.Flags().StringVar(&flagPrebakeMap, "map", "", "bake a single map")
	cmd.Flags().StringVar(&flagPrebakeScenario, "scenario", "weekday_typical_traffic_from_psrc", "reference scenario name")
	cmd.Flags().Int64Var(&flagPrebakeSeed, "seed", -1, "RNG seed (required)")
	cmd.Flags().BoolVar(&flagPrebakeAll, "all", false, "bake every map in the challenge catalog")
	cmd.Flags().IntVar(&flagPrebakeParallel, "parallel", 1, "max concurrent bakes")
	return cmd
}

func runPrebake(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if flagPrebakeSeed < 0 {
		return fmt.Errorf("--seed is required: baselines must be recorded deterministically")
	}
	seed := uint64(flagPrebakeSeed)

	var maps []string
	switch {
	case flagPrebakeMap != "":
		maps = []string{flagPrebakeMap}
	case flagPrebakeAll:
		maps = challengeMaps()
	default:
		return fmt.Errorf("one of --map or --all is required")
	}

	var jobs []runner.Job
	for _, mapName := range maps {
		mapName := mapName
		jobs = append(jobs, func() error {
			m, err := scenario.LoadMap(sim.MapPath(cfg.MapsDir, mapName))
			if err != nil {
				return err
			}
			sc, err := scenario.Load(cfg.ScenarioPath(mapName, flagPrebakeScenario))
			if err != nil {
				return err
			}
			fmt.Printf("Prebaking %s on %s (seed %d)...\n", sc.Name, mapName, seed)
			pr, err := challenge.Prebake(challenge.PrebakeOpts{
				Map:      m,
				Scenario: sc,
				Seed:     &seed,
				DataDir:  cfg.DataDir,
			})
			if err != nil {
				return fmt.Errorf("prebaking %s: %w", mapName, err)
			}
			fmt.Printf("  wrote %s (%d modes)\n", challenge.BaselinePath(cfg.DataDir, mapName), len(pr.ByMode))
			return nil
		})
	}
	return runner.RunPool(flagPrebakeParallel, jobs)
}

// challengeMaps lists each distinct map the catalog targets, in catalog
// order.
func challengeMaps() []string {
	seen := map[string]bool{}
	var maps []string
	for _, c := range challenge.All() {
		if !seen[c.MapName] {
			seen[c.MapName] = true
			maps = append(maps, c.MapName)
		}
	}
	return maps
}
