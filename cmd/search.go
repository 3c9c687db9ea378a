package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewCmdSearch creates the search command.
func NewCmdSearch(opts *Options) *cobra.Command {
	var selectValue string

	cmd := &cobra.Command{
		Use:   "search [title...]",
		Short: "Search issue and pull request titles in the home repository",
		Long: `List the autocomplete choices the bot offers for a partially typed title.
With --select, print the reply for a chosen result instead.

Examples:
  refbot search map view
  refbot search --select 4242`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, opts, selectValue)
		},
	}

	cmd.Flags().StringVar(&selectValue, "select", "", "Print the link for this issue or pull request number")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string, opts *Options, selectValue string) error {
	if selectValue == "" && len(args) == 0 {
		return fmt.Errorf("nothing to search: pass a title fragment or --select")
	}

	rt, err := setupRuntime(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if selectValue != "" {
		return rt.formatter.FormatMessage(rt.svc.Select(cmd.Context(), selectValue), cmd.OutOrStdout())
	}

	choices := rt.svc.Autocomplete(cmd.Context(), strings.Join(args, " "))
	return rt.formatter.FormatChoices(choices, cmd.OutOrStdout())
}
