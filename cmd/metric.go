package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spiffcs/refbot/internal/model"
)

// NewCmdStars creates the stars command.
func NewCmdStars(opts *Options) *cobra.Command {
	return newMetricCmd(opts, model.MetricStars)
}

// NewCmdForks creates the forks command.
func NewCmdForks(opts *Options) *cobra.Command {
	return newMetricCmd(opts, model.MetricForks)
}

func newMetricCmd(opts *Options, kind model.MetricKind) *cobra.Command {
	var repeat int

	cmd := &cobra.Command{
		Use:   string(kind),
		Short: fmt.Sprintf("Show the home repository's %s count", kind.Unit()),
		Long: fmt.Sprintf(`Show the home repository's %s count as the bot would reply to the
/%s command. With --repeat the count is fetched several times in the same
channel, showing the change since the previous call.`, kind.Unit(), kind),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMetric(cmd, opts, kind, repeat)
		},
	}

	cmd.Flags().StringVar(&opts.Channel, "channel", opts.Channel, "Channel whose previous value the delta is computed against")
	cmd.Flags().IntVar(&repeat, "repeat", 1, "Number of times to fetch the count")

	return cmd
}

func runMetric(cmd *cobra.Command, opts *Options, kind model.MetricKind, repeat int) error {
	if repeat < 1 {
		return fmt.Errorf("invalid repeat: %d (must be at least 1)", repeat)
	}

	rt, err := setupRuntime(cmd.Context(), opts)
	if err != nil {
		return err
	}

	for i := 0; i < repeat; i++ {
		message := rt.svc.Metric(cmd.Context(), kind, opts.Channel)
		if err := rt.formatter.FormatMessage(message, cmd.OutOrStdout()); err != nil {
			return err
		}
	}
	return nil
}
