package cmd

import (
	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := NewOptions()

	rootCmd := &cobra.Command{
		Use:   "refbot",
		Short: "Chat bot that links GitHub issue and pull request references",
		Long: `A chat bot backend that turns shorthand references like #1234,
repo#1234 and owner/repo#1234 into GitHub links, reports repository stars
and forks with per-channel deltas, and offers issue title search.

Run 'refbot serve' to expose the bot over HTTP, or use the subcommands to
exercise each feature from the terminal.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	addGlobalFlags(rootCmd, opts)

	// Register subcommands
	rootCmd.AddCommand(NewCmdServe(opts))
	rootCmd.AddCommand(NewCmdResolve(opts))
	rootCmd.AddCommand(NewCmdStars(opts))
	rootCmd.AddCommand(NewCmdForks(opts))
	rootCmd.AddCommand(NewCmdSearch(opts))
	rootCmd.AddCommand(NewCmdConfig(opts))
	rootCmd.AddCommand(NewCmdVersion())
	rootCmd.AddCommand(NewCmdRateLimit(opts))

	return rootCmd
}

func addGlobalFlags(cmd *cobra.Command, opts *Options) {
	cmd.PersistentFlags().StringVarP(&opts.Format, "output", "o", "", "Output format (text, json)")
	cmd.PersistentFlags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
	cmd.PersistentFlags().StringVarP(&opts.Repo, "repo", "R", "", "Home repository for unqualified references (owner/repo)")
	cmd.PersistentFlags().StringVar(&opts.LinkMode, "link-mode", "", "How references become links (api, static)")
	cmd.PersistentFlags().IntVarP(&opts.Workers, "workers", "w", 0, "Concurrent reference lookups per message")
	cmd.PersistentFlags().IntVar(&opts.MinBareNumber, "min-bare-number", -1, "Ignore bare #N references below this number")
}
