// ABOUTME: Reads M3U and extended M3U playlist files
// ABOUTME: Keeps the #EXTINF display name and duration as fallbacks for unreadable tags

// Package playlist reads playlists, extracts track metadata directly from audio
// file tags (ID3, Vorbis, etc.) and serves tracks page by page.
package playlist

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const extinfPrefix = "#EXTINF:"

// Entry is one track reference in a playlist
type Entry struct {
	Path     string // As written in the playlist, absolute or relative to it
	Name     string // Display name from #EXTINF, empty if absent
	Duration int    // Seconds from #EXTINF, -1 if unknown
}

// ReadPlaylist reads an M3U/M3U8 playlist file.
// Comments and blank lines are skipped; an #EXTINF line describes the entry after it.
func ReadPlaylist(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open playlist: %w", err)
	}

	defer func() {
		_ = file.Close() // Explicitly ignore error for read-only file
	}()

	var (
		entries []Entry
		pending *Entry
		first   = true
	)

	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}

		switch {
		case line == "":
			continue

		case strings.HasPrefix(line, extinfPrefix):
			info := parseExtinf(strings.TrimPrefix(line, extinfPrefix))
			pending = &info

		case strings.HasPrefix(line, "#"):
			continue

		default:
			entry := Entry{Path: line, Duration: -1}
			if pending != nil {
				entry.Name = pending.Name
				entry.Duration = pending.Duration
				pending = nil
			}

			entries = append(entries, entry)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading playlist: %w", err)
	}

	return entries, nil
}

// parseExtinf parses "123,Artist - Title" (the part after "#EXTINF:")
func parseExtinf(s string) Entry {
	e := Entry{Duration: -1}

	durationPart, name, found := strings.Cut(s, ",")
	if found {
		e.Name = strings.TrimSpace(name)
	}

	// Attributes such as tvg-id="..." may follow the duration
	if fields := strings.Fields(durationPart); len(fields) > 0 {
		if d, err := strconv.Atoi(fields[0]); err == nil && d >= 0 {
			e.Duration = d
		}
	}

	return e
}
