package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/tucluster/tuga/internal/config"
	"github.com/tucluster/tuga/pkg/client"
)

// Tucluster is the surface of the Tucluster API the commands use.
// *client.Client satisfies it; tests substitute a recorder.
type Tucluster interface {
	CreateModel(ctx context.Context, name, description, email string) (*client.Model, error)
	Models(ctx context.Context) ([]client.Model, error)
	Model(ctx context.Context, name string, tree bool) (*client.Model, error)
	UpdateModel(ctx context.Context, name string, patch client.ModelPatch) (*client.Model, error)
	UploadModelArchive(ctx context.Context, path string, fn client.ProgressFunc) (*client.Model, error)
	AddModelFile(ctx context.Context, name, path string, fn client.ProgressFunc) error
	CreateRun(ctx context.Context, spec client.RunSpec) ([]client.RunReceipt, error)
	Results(ctx context.Context, filter client.ResultFilter) ([]client.Result, error)
	DownloadFile(ctx context.Context, fid string, w io.Writer, fn client.ProgressFunc) (string, error)
}

// clientFromCmd builds the API client for a command invocation.
// An explicit --host flag wins over the environment and config file.
func clientFromCmd(cmd *cobra.Command) (*client.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("host") {
		cfg.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug, _ = cmd.Flags().GetBool("debug")
	}

	return client.NewClient(client.Config{
		BaseURL: cfg.Host,
		Token:   cfg.Token,
		Timeout: cfg.Timeout,
		Debug:   cfg.Debug,
	}), nil
}
