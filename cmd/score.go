package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mwebber/citysim/internal/challenge"
	"github.com/mwebber/citysim/internal/config"
	"github.com/mwebber/citysim/internal/result"
)

var flagChallenge string

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score [run-dir]",
		Short: "Score a recorded run against a challenge baseline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			ch, err := challenge.ByID(flagChallenge)
			if err != nil {
				return err
			}

			runDir := filepath.Join(cfg.ResultsDir, "latest")
			if len(args) > 0 {
				runDir = args[0]
			}
			resolved, err := filepath.EvalSymlinks(runDir)
			if err != nil {
				return fmt.Errorf("resolving run dir: %w", err)
			}

			meta, err := result.ReadRunMeta(filepath.Join(resolved, "meta.json"))
			if err != nil {
				return err
			}
			if meta.Map != ch.MapName {
				return fmt.Errorf("challenge %s targets map %s but the run used %s", ch.ID, ch.MapName, meta.Map)
			}
			if !meta.Seeded {
				return fmt.Errorf("run %s was entropy-seeded and cannot be scored; rerun with --rng-seed", resolved)
			}

			current, err := result.ReadStats(filepath.Join(resolved, "stats.yaml"))
			if err != nil {
				return err
			}

			// Gridlock goals are scored on the run alone.
			var baseline *challenge.PrebakedResults
			if ch.Goal.Kind != challenge.GoalIncreaseBadnessAbove {
				baseline, err = challenge.LoadBaseline(cfg.DataDir, ch.MapName)
				if err != nil {
					return err
				}
			}

			verdict, err := challenge.Evaluate(ch, current, baseline)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", ch.Title, ch.Goal)
			if verdict.Pass {
				fmt.Printf("PASS: %s\n", verdict.Reason)
				return nil
			}
			return fmt.Errorf("FAIL: %s", verdict.Reason)
		},
	}
	cmd.Flags().StringVar(&flagChallenge, "challenge", "", "challenge ID (see `citysim list`)")
	cmd.MarkFlagRequired("challenge")
	return cmd
}
