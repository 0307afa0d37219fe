package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tucluster/tuga/pkg/client"
)

type resultsOptions struct {
	filter client.ResultFilter
	format string
}

func newResultsCmd() *cobra.Command {
	var opts resultsOptions

	cmd := &cobra.Command{
		Use:   "results",
		Short: "View the results for a model, if available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := clientFromCmd(cmd)
			if err != nil {
				return err
			}
			return runResults(cmd.Context(), tc, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.filter.Model, "model", "m", "", "Filter by model name")
	cmd.Flags().StringVarP(&opts.filter.Script, "script", "s", "", "Filter by entry point script")
	cmd.Flags().StringVar(&opts.filter.TaskID, "task", "", "Filter by task id")
	cmd.Flags().StringVarP(&opts.format, "output", "o", "json", "Output format: json or yaml")

	// Accepted for compatibility; the server ignores them for now.
	cmd.Flags().StringP("download", "d", "", "Reserved")
	cmd.Flags().StringP("tree", "t", "", "Reserved")

	return cmd
}

func runResults(ctx context.Context, tc Tucluster, out io.Writer, opts resultsOptions) error {
	results, err := tc.Results(ctx, opts.filter)
	if err != nil {
		return fmt.Errorf("get results: %w", err)
	}

	fmt.Fprintln(out, "Result Info:")
	return renderDoc(out, results, opts.format)
}
