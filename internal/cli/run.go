package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tucluster/tuga/pkg/client"
)

func newAnugaCmd() *cobra.Command {
	return newEngineCmd(client.EngineAnuga, "Queue a modelling task to run with Anuga")
}

func newTuflowCmd() *cobra.Command {
	return newEngineCmd(client.EngineTuflow, "Queue a modelling task to run with Tuflow")
}

// newEngineCmd builds a run-creation command. The two engines share
// everything but the tag sent to the server.
func newEngineCmd(engine client.Engine, short string) *cobra.Command {
	var (
		script string
		notify bool
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   string(engine) + " NAME",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := clientFromCmd(cmd)
			if err != nil {
				return err
			}
			return runEngine(cmd.Context(), tc, cmd.OutOrStdout(), client.RunSpec{
				Model:  args[0],
				Script: script,
				Engine: engine,
				Notify: notify,
				Watch:  watch,
			})
		},
	}

	cmd.Flags().StringVarP(&script, "script", "s", "", "Entry point script to run")
	cmd.Flags().BoolVarP(&notify, "notify", "n", false, "Email the model owner when the run finishes")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Watch the model data for changes")

	return cmd
}

func runEngine(ctx context.Context, tc Tucluster, out io.Writer, spec client.RunSpec) error {
	receipts, err := tc.CreateRun(ctx, spec)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}

	printRunReceipts(out, receipts)
	return nil
}

func printRunReceipts(w io.Writer, receipts []client.RunReceipt) {
	for _, r := range receipts {
		if r.Queued() {
			success(w, "Run for script %s created.", r.EntryPoint)
			fmt.Fprintln(w, "To check the results, run: ")
			info(w, "tuga results --task %s", r.TaskID)
		} else {
			fail(w, "Run creation failed")
		}
	}
}
