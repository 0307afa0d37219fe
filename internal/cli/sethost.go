package cli

import (
	"github.com/spf13/cobra"

	"github.com/tucluster/tuga/internal/config"
)

func newSetHostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-host HOST",
		Short: "Change/set the host name from the default (" + config.DefaultHost + ")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			host := args[0]
			if err := config.SaveHost(host); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Host URL set to %s", host)
			return nil
		},
	}
}
