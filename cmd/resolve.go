package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewCmdResolve creates the resolve command.
func NewCmdResolve(opts *Options) *cobra.Command {
	var extractOnly bool

	cmd := &cobra.Command{
		Use:   "resolve [text...]",
		Short: "Print the links for references in a message",
		Long: `Resolve the issue and pull request references in a message the way the
bot would reply to it. The message is taken from the arguments, or read from
stdin when no arguments are given and stdin is not a terminal.

Examples:
  refbot resolve "fixed by #4242 and octokit/rest.js#12"
  git log -1 --format=%B | refbot resolve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args, opts, extractOnly)
		},
	}

	cmd.Flags().BoolVar(&extractOnly, "extract-only", false, "Only list the references found, without resolving them")

	return cmd
}

func runResolve(cmd *cobra.Command, args []string, opts *Options, extractOnly bool) error {
	text, err := messageText(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	rt, err := setupRuntime(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if extractOnly {
		return rt.formatter.FormatReferences(rt.svc.Resolver().Extract(text), cmd.OutOrStdout())
	}

	links := rt.svc.HandleMessage(cmd.Context(), opts.Channel, text)
	return rt.formatter.FormatLinks(links, cmd.OutOrStdout())
}

// messageText joins args, or reads stdin when there are none and stdin is
// piped.
func messageText(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", fmt.Errorf("no message given: pass text as arguments or pipe it on stdin")
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
