package config

import (
	"fmt"
	"strconv"
)

// Source names the layer an effective setting came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceGlobal  Source = "global"
	SourceLocal   Source = "local"
	SourceFlag    Source = "flag"
)

// Setting is one effective configuration value and where it was set.
// Path is empty for defaults and flags.
type Setting struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source Source `json:"source"`
	Path   string `json:"path,omitempty"`
}

// settingField reads one key from a single config layer. set reports
// whether that layer assigns the key; value falls back to the default.
type settingField struct {
	key   string
	value func(c *Config) (value string, set bool)
}

var settingFields = []settingField{
	{"home_owner", func(c *Config) (string, bool) { return c.GetHomeOwner(), c.HomeOwner != "" }},
	{"home_repo", func(c *Config) (string, bool) { return c.GetHomeRepo(), c.HomeRepo != "" }},
	{"min_bare_number", func(c *Config) (string, bool) {
		return strconv.Itoa(c.GetMinBareNumber()), c.MinBareNumber != nil
	}},
	{"link_mode", func(c *Config) (string, bool) { return c.GetLinkMode(), c.LinkMode != "" }},
	{"workers", func(c *Config) (string, bool) { return strconv.Itoa(c.GetWorkers()), c.Workers != nil }},
	{"output", func(c *Config) (string, bool) { return c.GetOutput(), c.Output != "" }},
	{"server.addr", func(c *Config) (string, bool) {
		return c.GetServerSettings().Addr, c.Server != nil && c.Server.Addr != ""
	}},
	{"server.read_timeout", func(c *Config) (string, bool) {
		return c.GetServerSettings().ReadTimeout.String(), c.Server != nil && c.Server.ReadTimeout != nil
	}},
	{"server.write_timeout", func(c *Config) (string, bool) {
		return c.GetServerSettings().WriteTimeout.String(), c.Server != nil && c.Server.WriteTimeout != nil
	}},
}

// Explain loads the global and local files separately and reports every
// key's effective value together with the layer that supplied it. Local
// beats global, and keys set in neither file report their default.
func Explain(globalPath, localPath string) ([]Setting, error) {
	global, err := LoadFile(globalPath)
	if err != nil {
		return nil, fmt.Errorf("global config: %w", err)
	}
	local, err := LoadFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("local config: %w", err)
	}
	if err := mergeConfig(global, local).Validate(); err != nil {
		return nil, err
	}

	defaults := &Config{}
	settings := make([]Setting, 0, len(settingFields))
	for _, f := range settingFields {
		s := Setting{Key: f.key}
		if v, ok := f.value(local); ok {
			s.Value, s.Source, s.Path = v, SourceLocal, localPath
		} else if v, ok := f.value(global); ok {
			s.Value, s.Source, s.Path = v, SourceGlobal, globalPath
		} else {
			s.Value, _ = f.value(defaults)
			s.Source = SourceDefault
		}
		settings = append(settings, s)
	}
	return settings, nil
}

// Override replaces the value of key with one given on the command line.
// Unknown keys are ignored.
func Override(settings []Setting, key, value string) {
	for i := range settings {
		if settings[i].Key == key {
			settings[i] = Setting{Key: key, Value: value, Source: SourceFlag}
			return
		}
	}
}
