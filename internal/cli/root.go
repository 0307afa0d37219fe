// Package cli implements the tuga command-line interface using Cobra.
// Each subcommand maps to one Tucluster API call sequence.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tucluster/tuga/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "tuga",
	Short: "Tucluster command-line client",
	Long: `tuga is the command-line client for a Tucluster modelling service.
Create models from input data, queue Anuga or Tuflow simulation runs
against them, and inspect or download the results.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("host", config.DefaultHost, "Host name of the tucluster API")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every API request to stderr")

	rootCmd.AddCommand(newSetHostCmd())
	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newAnugaCmd())
	rootCmd.AddCommand(newTuflowCmd())
	rootCmd.AddCommand(newModelCmd())
	rootCmd.AddCommand(newResultsCmd())
	rootCmd.AddCommand(newFileCmd())
}

// Execute runs the root command. Any error escaping a command handler is
// rendered here as a single highlighted line; this is the only error
// boundary in the CLI.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}
