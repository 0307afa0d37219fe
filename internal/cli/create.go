package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tucluster/tuga/pkg/client"
)

type createOptions struct {
	name        string
	data        string
	description string
	email       string
}

func newCreateCmd() *cobra.Command {
	var opts createOptions

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new model",
		Long: `Create a new model. With --data the zip archive is uploaded first and
the resulting model is then renamed and described; without it an empty
model is created directly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.name = args[0]
			tc, err := clientFromCmd(cmd)
			if err != nil {
				return err
			}
			return runCreate(cmd.Context(), tc, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.data, "data", "", "Path to zip archive containing input data")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "Description of model")
	cmd.Flags().StringVarP(&opts.email, "email", "e", "", "Email address of model owner/contact for notifications")

	return cmd
}

func runCreate(ctx context.Context, tc Tucluster, out io.Writer, opts createOptions) error {
	if opts.data != "" {
		// Post the data file then patch the resulting model with the
		// metadata. The patch is addressed by the server-chosen name.
		fi, err := os.Stat(opts.data)
		if err != nil {
			return fmt.Errorf("stat %s: %w", opts.data, err)
		}

		pb := newProgressBar(out, "Uploading data", fi.Size())
		uploaded, err := tc.UploadModelArchive(ctx, opts.data, pb.Add)
		if err != nil {
			pb.Abort()
			return fmt.Errorf("upload archive: %w", err)
		}
		pb.Done()

		success(out, "Upload successful")
		info(out, "Updating metadata...")

		_, err = tc.UpdateModel(ctx, uploaded.Name, client.ModelPatch{
			Name:        opts.name,
			Description: opts.description,
			Email:       opts.email,
		})
		if err != nil {
			return fmt.Errorf("update metadata: %w", err)
		}
	} else {
		if _, err := tc.CreateModel(ctx, opts.name, opts.description, opts.email); err != nil {
			return fmt.Errorf("create model: %w", err)
		}
	}

	success(out, "Model %s created!", opts.name)
	return nil
}
