// Package config handles loading and saving pullrefresh configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"pullrefresh/internal/pathutil"
	"pullrefresh/internal/rule"

	"gopkg.in/yaml.v3"
)

// Spinners lists the accepted animator.spinner names.
var Spinners = []string{"dot", "line", "minidot", "jump", "pulse", "points", "globe", "moon", "meter", "ellipsis"}

// Config is the top-level configuration.
type Config struct {
	Version  string   `yaml:"version"`
	Source   Source   `yaml:"source"`
	Refresh  Refresh  `yaml:"refresh"`
	Footer   Footer   `yaml:"footer"`
	Animator Animator `yaml:"animator"`
}

// Source describes the command whose output fills the pane.
type Source struct {
	Command  string `yaml:"command"`
	PageSize int    `yaml:"page_size,omitempty"`
}

// Refresh configures the pull-down header.
type Refresh struct {
	Threshold float64 `yaml:"threshold"`
	// Trigger is an optional expression replacing "pull >= threshold".
	Trigger string `yaml:"trigger,omitempty"`
	OnStart bool   `yaml:"on_start"`
}

// Footer configures load-more at the bottom of the pane.
type Footer struct {
	Enabled  bool    `yaml:"enabled"`
	Distance float64 `yaml:"distance,omitempty"`
}

// Animator configures the refresh feedback.
type Animator struct {
	Spinner string `yaml:"spinner,omitempty"`
	Titles  Titles `yaml:"titles,omitempty"`
}

// Titles override the labels shown per state.
type Titles struct {
	Pulling string `yaml:"pulling,omitempty"`
	Release string `yaml:"release,omitempty"`
	Loading string `yaml:"loading,omitempty"`
	NoMore  string `yaml:"no_more,omitempty"`
}

// Default returns a configuration that runs command.
func Default(command string) *Config {
	return &Config{
		Version: "1",
		Source: Source{
			Command:  command,
			PageSize: 50,
		},
		Refresh: Refresh{
			Threshold: 3,
			OnStart:   true,
		},
		Footer: Footer{
			Enabled: true,
		},
		Animator: Animator{
			Spinner: "dot",
		},
	}
}

// Load reads and parses a config file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(pathutil.Expand(path))
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default("")
	cfg.Version = ""
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields and compiles the trigger expression.
func (c *Config) Validate() error {
	if c.Version == "" {
		return errors.New("config missing version field")
	}

	if c.Version != "1" {
		return fmt.Errorf("unsupported config version: %s", c.Version)
	}

	if c.Source.Command == "" {
		return errors.New("source.command cannot be empty")
	}

	if c.Source.PageSize <= 0 {
		return fmt.Errorf("source.page_size must be positive, got %d", c.Source.PageSize)
	}

	if c.Refresh.Threshold <= 0 {
		return fmt.Errorf("refresh.threshold must be positive, got %g", c.Refresh.Threshold)
	}

	if c.Footer.Distance < 0 {
		return fmt.Errorf("footer.distance cannot be negative, got %g", c.Footer.Distance)
	}

	if _, err := c.TriggerRule(); err != nil {
		return fmt.Errorf("refresh.trigger: %w", err)
	}

	if c.Animator.Spinner != "" && !slices.Contains(Spinners, c.Animator.Spinner) {
		return fmt.Errorf("animator.spinner: unknown spinner %q, must be one of: %v", c.Animator.Spinner, Spinners)
	}

	return nil
}

// TriggerRule compiles the configured trigger. It returns nil when none is set.
func (c *Config) TriggerRule() (*rule.Rule, error) {
	if c.Refresh.Trigger == "" {
		return nil, nil
	}
	return rule.Compile(c.Refresh.Trigger)
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	expanded := pathutil.Expand(path)

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if err := os.WriteFile(expanded, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
