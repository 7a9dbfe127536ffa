// ABOUTME: Configuration management for the playlist feed
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"playlist-feed/threshold"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrUnknownKey    = errors.New("unknown config key")
)

// Config holds the feed settings
type Config struct {
	// Paging
	PageSize int `toml:"page_size"` // Tracks per load
	Workers  int `toml:"workers"`   // Tag readers per page, 0 for one per CPU

	// Scrolling
	ScrollThreshold string `toml:"scroll_threshold"` // "120px" rows or "80%"
	Height          int    `toml:"height"`           // Rows for the feed, 0 for the whole screen
	Inverse         bool   `toml:"inverse"`          // Newest at the bottom, load when nearing the top
	InitialScrollY  *int   `toml:"initial_scroll_y,omitempty"`
	ThrottleMS      int    `toml:"throttle_ms"`

	// Pull-to-refresh
	PullDownToRefresh bool `toml:"pull_down_to_refresh"`
	PullDownThreshold int  `toml:"pull_down_threshold"` // Rows to drag before release refreshes

	// Behaviour
	Watch      bool   `toml:"watch"` // Refresh when the playlist file changes
	EndMessage string `toml:"end_message"`
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/playlist-feed/config.toml
func GetConfigPath() string {
	if _, err := os.Stat("./playlist-feed.toml"); err == nil {
		return "./playlist-feed.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./playlist-feed.toml"
	}

	return filepath.Join(home, ".config", "playlist-feed", "config.toml")
}

// LoadConfig loads configuration from a TOML file.
// Keys missing from the file keep their defaults; a missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}

		sort.Strings(keys)

		return DefaultConfig(), fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}

	return cfg, nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, config Config) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultConfig returns the default feed configuration
func DefaultConfig() Config {
	return Config{
		PageSize:          25,
		Workers:           0,
		ScrollThreshold:   threshold.Default.String(),
		Height:            0,
		ThrottleMS:        150,
		PullDownToRefresh: true,
		PullDownThreshold: 3,
		Watch:             true,
		EndMessage:        "End of playlist",
	}
}

// Validate reports every invalid setting
func (c Config) Validate() error {
	var errs []error

	if c.PageSize < 1 {
		errs = append(errs, fmt.Errorf("page_size must be at least 1, got %d", c.PageSize))
	}

	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}

	if _, err := threshold.Parse(c.ScrollThreshold); err != nil {
		errs = append(errs, fmt.Errorf("scroll_threshold: %w", err))
	}

	if c.Height < 0 {
		errs = append(errs, fmt.Errorf("height must not be negative, got %d", c.Height))
	}

	if c.InitialScrollY != nil && *c.InitialScrollY < 0 {
		errs = append(errs, fmt.Errorf("initial_scroll_y must not be negative, got %d", *c.InitialScrollY))
	}

	if c.ThrottleMS < 0 {
		errs = append(errs, fmt.Errorf("throttle_ms must not be negative, got %d", c.ThrottleMS))
	}

	if c.PullDownThreshold < 0 {
		errs = append(errs, fmt.Errorf("pull_down_threshold must not be negative, got %d", c.PullDownThreshold))
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// ThrottleInterval returns throttle_ms as a duration
func (c Config) ThrottleInterval() time.Duration {
	return time.Duration(c.ThrottleMS) * time.Millisecond
}
