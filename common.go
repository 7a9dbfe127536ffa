// ABOUTME: Shared setup for the feed: debug logging, config resolution and text helpers
// ABOUTME: Maps the TOML config and command-line overrides onto the feed options

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/mattn/go-runewidth"

	"playlist-feed/config"
)

const debugLogName = "playlist-feed-debug.log"

var debugLog *log.Logger

// RunOptions contains command-line options
type RunOptions struct {
	PlaylistPath string
	ConfigPath   string
	DebugLog     bool
	WriteConfig  bool

	// Overrides; zero values keep the config file setting
	PageSize int
	Height   int
	Inverse  bool
	NoWatch  bool
}

// ResolveConfig loads the config file and applies command-line overrides
func ResolveConfig(opts RunOptions) (config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.GetConfigPath()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return cfg, err
	}

	if opts.PageSize > 0 {
		cfg.PageSize = opts.PageSize
	}

	if opts.Height > 0 {
		cfg.Height = opts.Height
	}

	if opts.Inverse {
		cfg.Inverse = true
	}

	if opts.NoWatch {
		cfg.Watch = false
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// SetupDebugLog initializes debug logging
func SetupDebugLog(filename string) error {
	if err := InitDebugLog(filename); err != nil {
		return fmt.Errorf("failed to initialize debug log: %w", err)
	}

	if filename == debugLogName {
		fileInfo, _ := os.Stdout.Stat()
		if (fileInfo.Mode() & os.ModeCharDevice) != 0 {
			fmt.Printf("Debug logging enabled: %s\n", filename)
		}
	}

	return nil
}

// InitDebugLog initializes debug logging
func InitDebugLog(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugLog = log.New(f, "", log.Ltime|log.Lmicroseconds)

	return nil
}

// debugf logs debug messages if enabled
func debugf(format string, args ...interface{}) {
	if debugLog != nil {
		debugLog.Printf(format, args...)
	}
}

// truncate shortens s to maxLen terminal cells, adding "..." if needed
func truncate(s string, maxLen int) string {
	if maxLen <= 3 {
		return runewidth.Truncate(s, maxLen, "")
	}

	return runewidth.Truncate(s, maxLen, "...")
}
