package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tucluster/tuga/pkg/client"
)

type updateOptions struct {
	name        string
	files       []string
	description string
	newName     string
	email       string
}

func newUpdateCmd() *cobra.Command {
	var opts updateOptions

	cmd := &cobra.Command{
		Use:   "update NAME",
		Short: "Update an existing model",
		Long: `Update an existing model. Metadata changes are applied first, then each
--file is uploaded in order. The steps are not atomic: a failed upload
leaves earlier changes in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.name = args[0]
			tc, err := clientFromCmd(cmd)
			if err != nil {
				return err
			}
			return runUpdate(cmd.Context(), tc, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.files, "file", "f", nil, "File to add to the model's data (repeatable)")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "Description of model")
	cmd.Flags().StringVarP(&opts.newName, "name", "n", "", "New name for the model")
	cmd.Flags().StringVarP(&opts.email, "email", "e", "", "Email address of model owner/contact")

	return cmd
}

func runUpdate(ctx context.Context, tc Tucluster, out io.Writer, opts updateOptions) error {
	name := opts.name

	if opts.description != "" || opts.newName != "" || opts.email != "" {
		info(out, "Updating metadata...")
		_, err := tc.UpdateModel(ctx, name, client.ModelPatch{
			Name:        opts.newName,
			Description: opts.description,
			Email:       opts.email,
		})
		if err != nil {
			return fmt.Errorf("update metadata: %w", err)
		}
		if opts.newName != "" {
			name = opts.newName
		}
	}

	for _, path := range opts.files {
		fi, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		pb := newProgressBar(out, fmt.Sprintf("Uploading %s...", filepath.Base(path)), fi.Size())
		if err := tc.AddModelFile(ctx, name, path, pb.Add); err != nil {
			pb.Abort()
			return fmt.Errorf("upload %s: %w", path, err)
		}
		pb.Done()
	}

	success(out, "Model %s updated!", opts.name)
	if opts.newName != "" {
		info(out, "The model has been renamed to %s. Use this name for future queries", opts.newName)
	}
	return nil
}
