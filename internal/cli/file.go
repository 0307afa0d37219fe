package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newFileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "file FID",
		Short: "Download a file by its FID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := clientFromCmd(cmd)
			if err != nil {
				return err
			}
			return runFile(cmd.Context(), tc, cmd.OutOrStdout(), args[0], ".")
		},
	}
}

// runFile streams the file into a temporary name in dir, then renames it
// to the server-supplied filename once the download completes.
func runFile(ctx context.Context, tc Tucluster, out io.Writer, fid, dir string) error {
	tmp, err := os.CreateTemp(dir, ".tuga-download-*")
	if err != nil {
		return fmt.Errorf("create download file: %w", err)
	}

	pb := newProgressBar(out, fmt.Sprintf("Downloading %s...", fid), 0)
	name, err := tc.DownloadFile(ctx, fid, tmp, pb.Add)
	closeErr := tmp.Close()
	if err != nil {
		pb.Abort()
		os.Remove(tmp.Name())
		return fmt.Errorf("download %s: %w", fid, err)
	}
	if closeErr != nil {
		os.Remove(tmp.Name())
		return closeErr
	}
	pb.Done()

	dest := filepath.Join(dir, filepath.Base(name))
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", name, err)
	}

	success(out, "Downloaded %s", name)
	return nil
}
