package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "citysim",
		Short: "Deterministic city traffic simulator",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "citysim.yaml", "config file path")
	root.AddCommand(newHeadlessCmd())
	root.AddCommand(newPrebakeCmd())
	root.AddCommand(newScoreCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newReportCmd())
	return root
}
