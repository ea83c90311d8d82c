package main

import (
	"os"

	"github.com/mwebber/citysim/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
