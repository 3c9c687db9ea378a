package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spiffcs/refbot/config"
	"github.com/spiffcs/refbot/internal/format"
	"github.com/spiffcs/refbot/internal/output"
)

// NewCmdConfig creates the config command. Without a subcommand it behaves
// like 'config show'.
func NewCmdConfig(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or edit the refbot configuration",
		Long: `Inspect or edit the refbot configuration.

Settings are read from the global file, then the local ./.refbot.yaml, then
command-line flags. Later layers win.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.OutOrStdout(), opts)
		},
	}

	cmd.AddCommand(NewCmdConfigShow(opts))
	cmd.AddCommand(NewCmdConfigInit(opts))
	cmd.AddCommand(NewCmdConfigSet())

	return cmd
}

// NewCmdConfigShow creates the config show subcommand.
func NewCmdConfigShow(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective settings and where each came from",
		Long: `Show every effective setting with the layer that supplied it:
flag, local, global or default.

  refbot config show
  refbot -R octokit/rest.js config show -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.OutOrStdout(), opts)
		},
	}
}

// NewCmdConfigInit creates the config init subcommand.
func NewCmdConfigInit(opts *Options) *cobra.Command {
	var local, force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file for a home repository",
		Long: `Write a starter config file. The home repository comes from --repo,
falling back to the built-in default.

  refbot -R octokit/rest.js config init --local`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd.OutOrStdout(), opts.Repo, local, force)
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Write ./.refbot.yaml instead of the global file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

// NewCmdConfigSet creates the config set subcommand.
func NewCmdConfigSet() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value in the global config file (or the local one
with --local). Available keys:
  home_owner            - Owner assumed by #N and repo#N references
  home_repo             - Repository assumed by #N references
  min_bare_number       - Ignore bare #N references below this number
  link_mode             - How references become links (api, static)
  workers               - Concurrent reference lookups per message
  output                - Default output format (text, json)
  server.addr           - Listen address for 'refbot serve'
  server.read_timeout   - HTTP read timeout (e.g. 10s)
  server.write_timeout  - HTTP write timeout (e.g. 30s)`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd.OutOrStdout(), args[0], args[1], local)
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Write to the local config file (./.refbot.yaml)")

	return cmd
}

// effectiveSettings layers the command-line flags over the config files.
func effectiveSettings(opts *Options) ([]config.Setting, error) {
	settings, err := config.Explain(config.ConfigPath(), config.LocalConfigPath())
	if err != nil {
		return nil, err
	}

	if opts.Repo != "" {
		owner, repo, err := homeRepository(opts.Repo, &config.Config{})
		if err != nil {
			return nil, err
		}
		config.Override(settings, "home_owner", owner)
		config.Override(settings, "home_repo", repo)
	}
	if opts.MinBareNumber >= 0 {
		config.Override(settings, "min_bare_number", strconv.Itoa(opts.MinBareNumber))
	}
	if opts.LinkMode != "" {
		config.Override(settings, "link_mode", opts.LinkMode)
	}
	if opts.Workers > 0 {
		config.Override(settings, "workers", strconv.Itoa(opts.Workers))
	}
	if opts.Format != "" {
		config.Override(settings, "output", opts.Format)
	}
	return settings, nil
}

func runConfigShow(w io.Writer, opts *Options) error {
	settings, err := effectiveSettings(opts)
	if err != nil {
		return err
	}

	switch output.Format(opts.Format) {
	case output.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string][]config.Setting{"settings": settings})
	case "", output.FormatText:
	default:
		return fmt.Errorf("invalid output format: %s (must be text or json)", opts.Format)
	}

	keyWidth, valueWidth := 0, 0
	for _, s := range settings {
		keyWidth = max(keyWidth, len(s.Key))
		valueWidth = max(valueWidth, format.DisplayWidth(s.Value))
	}

	for _, s := range settings {
		origin := string(s.Source)
		if s.Path != "" {
			origin += " " + s.Path
		}
		fmt.Fprintf(w, "%s  %s  %s\n",
			format.PadRight(s.Key, len(s.Key), keyWidth),
			format.PadRight(s.Value, format.DisplayWidth(s.Value), valueWidth),
			sourceColor(s.Source).Sprint(origin),
		)
	}
	return nil
}

func sourceColor(s config.Source) *color.Color {
	switch s {
	case config.SourceFlag:
		return color.New(color.FgMagenta)
	case config.SourceLocal:
		return color.New(color.FgCyan)
	case config.SourceGlobal:
		return color.New(color.FgBlue)
	default:
		return color.New(color.Faint)
	}
}

func runConfigInit(w io.Writer, repoFlag string, local, force bool) error {
	owner, repo, err := homeRepository(repoFlag, &config.Config{})
	if err != nil {
		return err
	}

	path := config.ConfigPath()
	if local {
		path = config.LocalConfigPath()
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}

	if err := config.SaveTo(path, config.StarterConfig(owner, repo)); err != nil {
		return err
	}

	fmt.Fprintf(w, "Wrote %s with home repository %s/%s.\n", path, owner, repo)
	return nil
}

func runConfigSet(w io.Writer, key, value string, local bool) error {
	path := config.ConfigPath()
	if local {
		path = config.LocalConfigPath()
	}

	// Only the target file is rewritten so values from the other file are not copied into it.
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.SaveTo(path); err != nil {
		return err
	}

	fmt.Fprintf(w, "Set %s to %s in %s.\n", key, value, path)
	return nil
}
