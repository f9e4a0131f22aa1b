// Command wppctl is a thin CLI over the population engine, exercising
// the engine's query surface from the shell: subcommands for the point
// queries (pop-age, pop-dob) and the C6 operations, sharing a
// --config/--format flag pair. The range-sum primitives (PopSumAge,
// PopSumDob, PopSumDobInverseDate) have no subcommand of their own.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "wppctl",
		Short: "Query the world population interpolation engine",
	}

	var configPath string
	var format string
	root.PersistentFlags().StringVar(&configPath, "config", "wpp.yaml", "path to engine config YAML")
	root.PersistentFlags().StringVar(&format, "format", "console", "output format: console, json, or csv")

	root.AddCommand(
		newPopAgeCmd(&configPath, &format),
		newPopDobCmd(&configPath, &format),
		newRankCmd(&configPath, &format),
		newDateForRankCmd(&configPath, &format),
		newLifeExpectancyCmd(&configPath, &format),
		newTotalPopulationCmd(&configPath, &format),
		newPopulationCountCmd(&configPath, &format),
		newMortalityCmd(&configPath, &format),
	)
	return root
}
