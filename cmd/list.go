package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwebber/citysim/internal/challenge"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available challenges",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Challenges:")
			for _, c := range challenge.All() {
				fmt.Printf("  - %s (map: %s)\n", c.ID, c.MapName)
				fmt.Printf("      %s\n", c.Description)
			}
			return nil
		},
	}
}
