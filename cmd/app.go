package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spiffcs/refbot/config"
	"github.com/spiffcs/refbot/internal/constants"
	"github.com/spiffcs/refbot/internal/ghclient"
	"github.com/spiffcs/refbot/internal/log"
	"github.com/spiffcs/refbot/internal/output"
	"github.com/spiffcs/refbot/internal/references"
	"github.com/spiffcs/refbot/internal/service"
	"github.com/spiffcs/refbot/internal/stats"
	"github.com/spiffcs/refbot/internal/urlutil"
)

// app holds everything a command needs after flags and config are merged.
type app struct {
	cfg       *config.Config
	owner     string
	repo      string
	formatter output.Formatter
	client    *ghclient.Client
	svc       *service.Service
}

// setupRuntime loads config, initializes logging and wires the GitHub
// client into the resolver and tracker.
func setupRuntime(ctx context.Context, opts *Options) (*app, error) {
	log.Initialize(opts.Verbosity, os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	owner, repo, err := homeRepository(opts.Repo, cfg)
	if err != nil {
		return nil, err
	}

	format := opts.Format
	if format == "" {
		format = cfg.GetOutput()
	}
	if format != string(output.FormatText) && format != string(output.FormatJSON) {
		return nil, fmt.Errorf("invalid output format: %s (must be text or json)", format)
	}

	linkMode := opts.LinkMode
	if linkMode == "" {
		linkMode = cfg.GetLinkMode()
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = cfg.GetWorkers()
	}

	minBare := opts.MinBareNumber
	if minBare < 0 {
		minBare = cfg.GetMinBareNumber()
	}

	client, err := newGitHubClient(ctx, cfg.GetGitHubToken(), owner, repo)
	if err != nil {
		return nil, err
	}

	var linker references.Linker
	switch linkMode {
	case constants.LinkModeAPI:
		linker = client
	case constants.LinkModeStatic:
		linker = urlutil.NewStaticLinker()
	default:
		return nil, fmt.Errorf("invalid link mode: %s (must be %s or %s)", linkMode, constants.LinkModeAPI, constants.LinkModeStatic)
	}

	resolver := references.NewResolver(linker,
		references.WithHome(owner, repo),
		references.WithMinBareNumber(minBare),
		references.WithWorkers(workers),
		references.WithSearcher(client),
	)
	tracker := stats.NewTracker(client, nil)

	log.Debug("runtime ready", "home", owner+"/"+repo, "link_mode", linkMode, "workers", workers, "min_bare_number", minBare)

	return &app{
		cfg:       cfg,
		owner:     owner,
		repo:      repo,
		formatter: output.NewFormatter(output.Format(format)),
		client:    client,
		svc:       service.New(resolver, tracker),
	}, nil
}

// newGitHubClient authenticates with GITHUB_TOKEN when set and falls back to
// the unauthenticated API otherwise.
func newGitHubClient(ctx context.Context, token, owner, repo string) (*ghclient.Client, error) {
	if token == "" {
		log.Warn("GITHUB_TOKEN not set, using unauthenticated GitHub API with a low rate limit")
		return ghclient.NewAnonymousClient(ghclient.WithHome(owner, repo))
	}
	return ghclient.NewClient(ctx, token, ghclient.WithHome(owner, repo))
}

// homeRepository resolves the home owner and repo from the --repo flag or
// the config.
func homeRepository(flag string, cfg *config.Config) (string, string, error) {
	if flag == "" {
		return cfg.GetHomeOwner(), cfg.GetHomeRepo(), nil
	}
	owner, repo, ok := strings.Cut(flag, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("invalid repo %q (must be owner/repo)", flag)
	}
	return owner, repo, nil
}
