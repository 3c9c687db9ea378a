package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spiffcs/refbot/config"
)

func TestNew(t *testing.T) {
	cmd := New()
	if cmd == nil {
		t.Fatal("New() returned nil")
	}
	if cmd.Use != "refbot" {
		t.Errorf("expected Use to be 'refbot', got %q", cmd.Use)
	}

	want := []string{"serve", "resolve", "stars", "forks", "search", "config", "version", "ratelimit"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := New()
	for _, name := range []string{"output", "verbose", "repo", "link-mode", "workers", "min-bare-number"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag --%s missing", name)
		}
	}
}

func TestNewCmdMetric(t *testing.T) {
	opts := NewOptions()

	tests := []struct {
		name string
		use  string
	}{
		{"stars", NewCmdStars(opts).Use},
		{"forks", NewCmdForks(opts).Use},
	}
	for _, tt := range tests {
		if tt.use != tt.name {
			t.Errorf("expected Use %q, got %q", tt.name, tt.use)
		}
	}
}

func TestNewCmdConfig(t *testing.T) {
	cmd := NewCmdConfig(NewOptions())
	if cmd.Use != "config" {
		t.Errorf("expected Use to be 'config', got %q", cmd.Use)
	}
	if len(cmd.Commands()) != 3 {
		t.Errorf("expected 3 config subcommands, got %d", len(cmd.Commands()))
	}
}

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.0.0", "abc123", "2026-01-01")

	cmd := NewCmdVersion()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(buf.String(), "refbot 1.0.0") || !strings.Contains(buf.String(), "abc123") {
		t.Errorf("unexpected version output %q", buf.String())
	}
}

func TestNewOptions(t *testing.T) {
	opts := NewOptions()
	if opts.MinBareNumber != -1 {
		t.Errorf("expected MinBareNumber to defer to config, got %d", opts.MinBareNumber)
	}
	if opts.Channel != "cli" {
		t.Errorf("expected default channel 'cli', got %q", opts.Channel)
	}

	opts = NewOptions(
		WithFormat("json"),
		WithVerbosity(2),
		WithRepo("octokit/rest.js"),
		WithLinkMode("static"),
		WithWorkers(3),
		WithMinBareNumber(0),
		WithChannel("general"),
	)
	if opts.Format != "json" || opts.Verbosity != 2 || opts.Repo != "octokit/rest.js" ||
		opts.LinkMode != "static" || opts.Workers != 3 || opts.MinBareNumber != 0 || opts.Channel != "general" {
		t.Errorf("options not applied: %+v", opts)
	}
}

func TestHomeRepository(t *testing.T) {
	cfg := &config.Config{HomeOwner: "octokit", HomeRepo: "rest.js"}

	tests := []struct {
		flag      string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{"", "octokit", "rest.js", false},
		{"immich-app/static-pages", "immich-app", "static-pages", false},
		{"immich", "", "", true},
		{"/immich", "", "", true},
		{"a/b/c", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			owner, repo, err := homeRepository(tt.flag, cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("homeRepository(%q) error = %v, wantErr %v", tt.flag, err, tt.wantErr)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("homeRepository(%q) = %s/%s", tt.flag, owner, repo)
			}
		})
	}
}

func TestMessageText(t *testing.T) {
	got, err := messageText([]string{"see", "#4242"}, strings.NewReader("ignored"))
	if err != nil || got != "see #4242" {
		t.Errorf("messageText(args) = %q, %v", got, err)
	}

	got, err = messageText(nil, strings.NewReader("from stdin #5000\n"))
	if err != nil || got != "from stdin #5000\n" {
		t.Errorf("messageText(stdin) = %q, %v", got, err)
	}
}

func TestResolveExtractOnly(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GITHUB_TOKEN", "")

	root := New()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"resolve", "--extract-only", "-o", "json", "see #4242 and octokit/rest.js#7"})

	if err := root.Execute(); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	want := `"owner": "octokit"`
	if !strings.Contains(buf.String(), want) || !strings.Contains(buf.String(), `"number": 4242`) {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestResolveStaticLinks(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GITHUB_TOKEN", "")

	root := New()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"resolve", "--link-mode", "static", "-o", "json", "-R", "octokit/rest.js", "fixed #1234, not #12"})

	if err := root.Execute(); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	want := `{
  "links": [
    "https://github.com/octokit/rest.js/issues/1234"
  ]
}
`
	if buf.String() != want {
		t.Errorf("resolve output = %q, want %q", buf.String(), want)
	}
}

func TestSearchRequiresInput(t *testing.T) {
	root := New()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"search"})

	if err := root.Execute(); err == nil {
		t.Error("expected error for empty search")
	}
}

// isolateConfig points the global config at a temp dir and runs the test
// from an empty working directory. It returns the global config path.
func isolateConfig(t *testing.T) string {
	t.Helper()
	t.Chdir(t.TempDir())
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GITHUB_TOKEN", "")
	return filepath.Join(xdg, "refbot", "config.yaml")
}

func TestConfigShowSources(t *testing.T) {
	globalPath := isolateConfig(t)
	if err := config.SaveTo(globalPath, "home_owner: octokit\nhome_repo: rest.js\n"); err != nil {
		t.Fatal(err)
	}
	if err := config.SaveTo(config.LocalConfigPath(), "min_bare_number: 50\n"); err != nil {
		t.Fatal(err)
	}

	root := New()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"config", "show", "-o", "json", "--link-mode", "static"})
	if err := root.Execute(); err != nil {
		t.Fatalf("config show: %v", err)
	}

	var got struct {
		Settings []config.Setting `json:"settings"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	byKey := make(map[string]config.Setting)
	for _, s := range got.Settings {
		byKey[s.Key] = s
	}

	tests := []struct {
		key    string
		value  string
		source config.Source
	}{
		{"home_owner", "octokit", config.SourceGlobal},
		{"home_repo", "rest.js", config.SourceGlobal},
		{"min_bare_number", "50", config.SourceLocal},
		{"link_mode", "static", config.SourceFlag},
		{"output", "json", config.SourceFlag},
		{"workers", "8", config.SourceDefault},
	}
	for _, tt := range tests {
		s := byKey[tt.key]
		if s.Value != tt.value || s.Source != tt.source {
			t.Errorf("%s = %q from %s, want %q from %s", tt.key, s.Value, s.Source, tt.value, tt.source)
		}
	}
	if p := byKey["home_owner"].Path; p != globalPath {
		t.Errorf("home_owner path = %q, want %q", p, globalPath)
	}
}

func TestConfigShowRepoFlag(t *testing.T) {
	isolateConfig(t)

	root := New()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"-R", "octokit/rest.js", "config"})
	if err := root.Execute(); err != nil {
		t.Fatalf("config: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	if !strings.HasPrefix(lines[0], "home_owner") || !strings.Contains(lines[0], "octokit") || !strings.Contains(lines[0], "flag") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(buf.String(), "default") {
		t.Errorf("expected unset keys to report their default, got %q", buf.String())
	}
}

func TestConfigInitSeedsRepo(t *testing.T) {
	isolateConfig(t)

	run := func(args ...string) error {
		root := New()
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		root.SetArgs(args)
		return root.Execute()
	}

	if err := run("-R", "octokit/rest.js", "config", "init", "--local"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	cfg, err := config.LoadFile(config.LocalConfigPath())
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.GetHomeOwner() != "octokit" || cfg.GetHomeRepo() != "rest.js" {
		t.Errorf("home = %s/%s, want octokit/rest.js", cfg.GetHomeOwner(), cfg.GetHomeRepo())
	}

	if err := run("config", "init", "--local"); err == nil {
		t.Error("expected error when the file already exists")
	}
	if err := run("-R", "immich-app/immich", "config", "init", "--local", "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}
	cfg, _ = config.LoadFile(config.LocalConfigPath())
	if cfg.GetHomeOwner() != "immich-app" {
		t.Errorf("expected --force to rewrite the home owner, got %s", cfg.GetHomeOwner())
	}

	if err := run("-R", "no-slash", "config", "init", "--local", "--force"); err == nil {
		t.Error("expected error for malformed --repo")
	}
}
