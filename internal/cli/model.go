package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type modelOptions struct {
	name   string
	tree   bool
	format string
}

func newModelCmd() *cobra.Command {
	var opts modelOptions

	cmd := &cobra.Command{
		Use:   "model",
		Short: "View a model and its data tree",
		Long:  `Without --name, list all models. With --name, fetch a single model, optionally with its data tree.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := clientFromCmd(cmd)
			if err != nil {
				return err
			}
			return runModel(cmd.Context(), tc, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Model name; omit to list all models")
	cmd.Flags().BoolVarP(&opts.tree, "tree", "t", false, "Include the model's data tree")
	cmd.Flags().StringVarP(&opts.format, "output", "o", "json", "Output format: json or yaml")

	return cmd
}

func runModel(ctx context.Context, tc Tucluster, out io.Writer, opts modelOptions) error {
	var result any
	var err error

	if opts.name != "" {
		result, err = tc.Model(ctx, opts.name, opts.tree)
	} else {
		result, err = tc.Models(ctx)
	}
	if err != nil {
		return fmt.Errorf("get model: %w", err)
	}

	fmt.Fprintln(out, "Model Info:")
	return renderDoc(out, result, opts.format)
}
