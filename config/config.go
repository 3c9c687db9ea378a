package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spiffcs/refbot/internal/constants"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	HomeOwner     string `yaml:"home_owner,omitempty" json:"home_owner,omitempty"`
	HomeRepo      string `yaml:"home_repo,omitempty" json:"home_repo,omitempty"`
	MinBareNumber *int   `yaml:"min_bare_number,omitempty" json:"min_bare_number,omitempty"`
	LinkMode      string `yaml:"link_mode,omitempty" json:"link_mode,omitempty"`
	Workers       *int   `yaml:"workers,omitempty" json:"workers,omitempty"`
	Output        string `yaml:"output,omitempty" json:"output,omitempty"`

	Server *ServerOverrides `yaml:"server,omitempty" json:"server,omitempty"`
}

// ServerOverrides configures the webhook server
type ServerOverrides struct {
	Addr         string         `yaml:"addr,omitempty" json:"addr,omitempty"`
	ReadTimeout  *time.Duration `yaml:"read_timeout,omitempty" json:"read_timeout,omitempty"`
	WriteTimeout *time.Duration `yaml:"write_timeout,omitempty" json:"write_timeout,omitempty"`
}

// ServerSettings is the fully resolved server configuration
type ServerSettings struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".refbot"
	}
	return filepath.Join(configDir, "refbot")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current directory
func LocalConfigPath() string {
	return ".refbot.yaml"
}

// Load loads the configuration from disk.
// It first loads the global config from XDG config directory, then merges
// any local .refbot.yaml config on top (local values take precedence).
func Load() (*Config, error) {
	return LoadFrom(ConfigPath(), LocalConfigPath())
}

// LoadFrom loads and merges the config files at globalPath and localPath.
// Missing files are skipped.
func LoadFrom(globalPath, localPath string) (*Config, error) {
	cfg := &Config{}

	global, err := loadFile(globalPath)
	if err != nil {
		return nil, fmt.Errorf("global config: %w", err)
	}
	if global != nil {
		cfg = global
	}

	local, err := loadFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("local config: %w", err)
	}
	if local != nil {
		cfg = mergeConfig(cfg, local)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads a single config file without merging. A missing file
// yields an empty config.
func LoadFile(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &Config{}
	}
	return cfg, nil
}

// loadFile parses one config file. A missing file yields nil, nil.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// mergeConfig merges local config on top of global config.
// Local values take precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	result := *global

	if local.HomeOwner != "" {
		result.HomeOwner = local.HomeOwner
	}
	if local.HomeRepo != "" {
		result.HomeRepo = local.HomeRepo
	}
	if local.MinBareNumber != nil {
		result.MinBareNumber = local.MinBareNumber
	}
	if local.LinkMode != "" {
		result.LinkMode = local.LinkMode
	}
	if local.Workers != nil {
		result.Workers = local.Workers
	}
	if local.Output != "" {
		result.Output = local.Output
	}
	result.Server = mergeServerOverrides(global.Server, local.Server)

	return &result
}

func mergeServerOverrides(global, local *ServerOverrides) *ServerOverrides {
	if global == nil && local == nil {
		return nil
	}
	if global == nil {
		return local
	}
	if local == nil {
		return global
	}

	result := *global
	if local.Addr != "" {
		result.Addr = local.Addr
	}
	if local.ReadTimeout != nil {
		result.ReadTimeout = local.ReadTimeout
	}
	if local.WriteTimeout != nil {
		result.WriteTimeout = local.WriteTimeout
	}
	return &result
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	switch c.LinkMode {
	case "", constants.LinkModeAPI, constants.LinkModeStatic:
	default:
		return fmt.Errorf("invalid link_mode: %s (must be %s or %s)", c.LinkMode, constants.LinkModeAPI, constants.LinkModeStatic)
	}
	switch c.Output {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid output: %s (must be text or json)", c.Output)
	}
	if c.MinBareNumber != nil && *c.MinBareNumber < 0 {
		return fmt.Errorf("invalid min_bare_number: %d (must not be negative)", *c.MinBareNumber)
	}
	if c.Workers != nil && *c.Workers < 1 {
		return fmt.Errorf("invalid workers: %d (must be at least 1)", *c.Workers)
	}
	return nil
}

// GetHomeOwner returns the default organization for references
func (c *Config) GetHomeOwner() string {
	if c.HomeOwner != "" {
		return c.HomeOwner
	}
	return constants.DefaultHomeOwner
}

// GetHomeRepo returns the default repository for references
func (c *Config) GetHomeRepo() string {
	if c.HomeRepo != "" {
		return c.HomeRepo
	}
	return constants.DefaultHomeRepo
}

// GetMinBareNumber returns the low-number filter threshold
func (c *Config) GetMinBareNumber() int {
	if c.MinBareNumber != nil {
		return *c.MinBareNumber
	}
	return constants.DefaultMinBareNumber
}

// GetLinkMode returns how references are turned into URLs
func (c *Config) GetLinkMode() string {
	if c.LinkMode != "" {
		return c.LinkMode
	}
	return constants.LinkModeAPI
}

// GetWorkers returns the lookup concurrency per message
func (c *Config) GetWorkers() int {
	if c.Workers != nil {
		return *c.Workers
	}
	return constants.DefaultWorkers
}

// GetOutput returns the default CLI output format
func (c *Config) GetOutput() string {
	if c.Output != "" {
		return c.Output
	}
	return "text"
}

// GetServerSettings returns server settings with defaults applied
func (c *Config) GetServerSettings() ServerSettings {
	s := ServerSettings{
		Addr:         constants.DefaultServerAddr,
		ReadTimeout:  constants.DefaultReadTimeout,
		WriteTimeout: constants.DefaultWriteTimeout,
	}
	if c.Server == nil {
		return s
	}
	if c.Server.Addr != "" {
		s.Addr = c.Server.Addr
	}
	if c.Server.ReadTimeout != nil {
		s.ReadTimeout = *c.Server.ReadTimeout
	}
	if c.Server.WriteTimeout != nil {
		s.WriteTimeout = *c.Server.WriteTimeout
	}
	return s
}

// GetGitHubToken returns the GitHub token from the GITHUB_TOKEN environment variable.
// Following 12-factor app best practices, tokens are only read from the environment.
func (c *Config) GetGitHubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}

// SaveTo writes the configuration to path, creating directories as needed
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return SaveTo(path, string(data))
}

// Set updates a single key by name. Integers and durations are parsed from value.
func (c *Config) Set(key, value string) error {
	switch key {
	case "token":
		return fmt.Errorf("tokens cannot be stored in config files for security reasons. Set the GITHUB_TOKEN environment variable instead")
	case "home_owner":
		c.HomeOwner = value
	case "home_repo":
		c.HomeRepo = value
	case "min_bare_number":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid min_bare_number: %s", value)
		}
		c.MinBareNumber = &n
	case "link_mode":
		c.LinkMode = value
	case "workers":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid workers: %s", value)
		}
		c.Workers = &n
	case "output":
		c.Output = value
	case "server.addr":
		c.server().Addr = value
	case "server.read_timeout", "server.write_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %s", key, value)
		}
		if key == "server.read_timeout" {
			c.server().ReadTimeout = &d
		} else {
			c.server().WriteTimeout = &d
		}
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return c.Validate()
}

func (c *Config) server() *ServerOverrides {
	if c.Server == nil {
		c.Server = &ServerOverrides{}
	}
	return c.Server
}

// StarterConfig returns a commented config file whose home repository is
// owner/repo.
func StarterConfig(owner, repo string) string {
	return fmt.Sprintf(`# refbot configuration file
# Run 'refbot config show' to see every effective value and its source.

# Repository assumed by "#1234" and "repo#1234" references
home_owner: %s
home_repo: %s

# Bare "#N" references below this number are ignored
# min_bare_number: %d

# How references become links: api (GitHub lookup) or static (no API calls)
# link_mode: %s

# Webhook server (refbot serve)
# server:
#   addr: %q
`, owner, repo, constants.DefaultMinBareNumber, constants.LinkModeAPI, constants.DefaultServerAddr)
}

// SaveTo writes content to a specific path, creating directories as needed
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
