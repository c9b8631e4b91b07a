// Package session holds the per-user dashboard preferences that survive a
// restart: theme, feed visibility and the mission statement.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Theme selects the dashboard palette.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// DefaultMission is shown until the user edits the mission banner.
const DefaultMission = "Build an autonomous organization of AI agents that produces value 24/7"

// Config is the session state passed to the presentation layer.
type Config struct {
	// Theme is dark or light.
	Theme Theme `yaml:"theme"`
	// FeedVisible shows or hides the live feed pane.
	FeedVisible bool `yaml:"feed_visible"`
	// Mission is the statement shown in the banner.
	Mission string `yaml:"mission"`
}

// Default returns the initial session state.
func Default() *Config {
	return &Config{
		Theme:       ThemeDark,
		FeedVisible: true,
		Mission:     DefaultMission,
	}
}

// DefaultPath returns ~/.missionctl/session.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	return filepath.Join(home, ".missionctl", "session.yaml"), nil
}

// Load reads a session file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing session file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session: %w", err)
	}

	return cfg, nil
}

// Save writes a session file, creating parent directories if needed.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("session cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Validate checks that the session is usable.
func (c *Config) Validate() error {
	switch c.Theme {
	case ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("invalid theme %q, must be: dark or light", c.Theme)
	}
	if strings.TrimSpace(c.Mission) == "" {
		return fmt.Errorf("mission cannot be empty")
	}
	return nil
}

// ToggleTheme switches between dark and light.
func (c *Config) ToggleTheme() Theme {
	if c.Theme == ThemeDark {
		c.Theme = ThemeLight
	} else {
		c.Theme = ThemeDark
	}
	return c.Theme
}

// ToggleFeed shows or hides the live feed.
func (c *Config) ToggleFeed() bool {
	c.FeedVisible = !c.FeedVisible
	return c.FeedVisible
}

// SetMission replaces the mission with the trimmed draft. A blank draft
// leaves the mission unchanged.
func (c *Config) SetMission(draft string) bool {
	draft = strings.TrimSpace(draft)
	if draft == "" || draft == c.Mission {
		return false
	}
	c.Mission = draft
	return true
}
