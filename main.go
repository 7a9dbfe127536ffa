// ABOUTME: Entry point for playlist-feed
// ABOUTME: Parses flags, resolves the config and runs the feed screen

// Package main provides the entry point for playlist-feed, a terminal viewer
// that streams a playlist in as you scroll.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"playlist-feed/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, ok := parseFlags(os.Args[1:])
	if !ok {
		return 1
	}

	cfg, err := ResolveConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return 1
	}

	if opts.WriteConfig {
		path := opts.ConfigPath
		if path == "" {
			path = config.GetConfigPath()
		}

		if err := config.SaveConfig(path, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)

			return 1
		}

		fmt.Printf("Config written to %s\n", path)

		if opts.PlaylistPath == "" {
			return 0
		}
	}

	if opts.DebugLog {
		if err := SetupDebugLog(debugLogName); err != nil {
			log.Printf("Failed to setup debug log: %v", err)
		}
	}

	debugf("[MAIN] Starting feed for %s (page_size=%d height=%d inverse=%v threshold=%s)",
		opts.PlaylistPath, cfg.PageSize, cfg.Height, cfg.Inverse, cfg.ScrollThreshold)

	if err := RunFeed(cfg, opts.PlaylistPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return 1
	}

	return 0
}

// parseFlags reads the command line into RunOptions
func parseFlags(args []string) (RunOptions, bool) {
	fs := flag.NewFlagSet("playlist-feed", flag.ContinueOnError)

	var opts RunOptions

	fs.StringVar(&opts.ConfigPath, "config", "", "config file (default ./playlist-feed.toml or ~/.config/playlist-feed/config.toml)")
	fs.BoolVar(&opts.DebugLog, "debug", false, "enable debug logging to "+debugLogName)
	fs.IntVar(&opts.PageSize, "page-size", 0, "tracks per load (overrides config)")
	fs.IntVar(&opts.Height, "height", 0, "rows for the feed, 0 for the whole screen (overrides config)")
	fs.BoolVar(&opts.Inverse, "inverse", false, "newest at the bottom, load more near the top")
	fs.BoolVar(&opts.NoWatch, "no-watch", false, "don't reload when the playlist file changes")
	fs.BoolVar(&opts.WriteConfig, "write-config", false, "write the effective config and exit unless a playlist is given")
	fs.Usage = func() { printUsage(fs) }

	if err := fs.Parse(args); err != nil {
		return opts, false
	}

	switch fs.NArg() {
	case 0:
		if !opts.WriteConfig {
			printUsage(fs)

			return opts, false
		}
	case 1:
		opts.PlaylistPath = fs.Arg(0)
	default:
		printUsage(fs)

		return opts, false
	}

	return opts, true
}

func printUsage(fs *flag.FlagSet) {
	fmt.Println("Usage: playlist-feed [flags] <playlist.m3u8>")
	fmt.Println("Example: playlist-feed -page-size 40 ~/Music/low_energy_liquid_dnb.m3u8")
	fmt.Println("\nFlags:")
	fs.PrintDefaults()
}
