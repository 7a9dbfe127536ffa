// ABOUTME: Defines Track and reads its metadata directly from audio files
// ABOUTME: Artist, album, title, genre, year, BPM plus key and energy from DJ-style comments

package playlist

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
)

// Track is a playlist entry with whatever metadata could be read
type Track struct {
	Path   string  // As written in the playlist
	Artist string  // Artist name
	Album  string  // Album name
	Title  string  // Track title, or a fallback name when tags are missing
	Genre  string  // Genre (empty if not available)
	Year   int     // Release year (0 if not available)
	Key    string  // Camelot key such as "8A" (empty if not available)
	Energy int     // Energy level 1-10 (0 if not available)
	BPM    float64 // Beats per minute (0 if not available)
	Err    error   // Why the tags could not be read, nil on success
}

// Comments written by DJ tools look like "8A - Energy 6"
var (
	keyRegex    = regexp.MustCompile(`(\d{1,2}[AB])\s*-\s*Energy`)
	energyRegex = regexp.MustCompile(`Energy\s+(\d+)`)
)

// bpmTags lists the raw tag names BPM is stored under across formats
var bpmTags = []string{"TBPM", "BPM", "bpm", "tempo"}

// GetTrackMetadata reads the tags of a track. Relative paths are resolved
// against baseDir, typically the playlist's directory.
func GetTrackMetadata(trackPath string, baseDir string) (*Track, error) {
	fullPath := trackPath
	if !filepath.IsAbs(trackPath) && baseDir != "" {
		fullPath = filepath.Join(baseDir, trackPath)
	}

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	t := &Track{
		Path:   trackPath,
		Artist: metadata.Artist(),
		Album:  metadata.Album(),
		Title:  metadata.Title(),
		Genre:  metadata.Genre(),
		Year:   metadata.Year(),
		BPM:    rawBPM(metadata.Raw()),
	}

	if t.Title == "" {
		t.Title = fileTitle(trackPath)
	}

	t.Key, t.Energy = parseComment(metadata.Comment())

	return t, nil
}

// FallbackTrack describes an entry whose tags could not be read
func FallbackTrack(e Entry, err error) Track {
	t := Track{Path: e.Path, Title: fileTitle(e.Path), Err: err}

	// "Artist - Title" is the usual #EXTINF convention
	if e.Name != "" {
		if artist, title, ok := strings.Cut(e.Name, " - "); ok {
			t.Artist = strings.TrimSpace(artist)
			t.Title = strings.TrimSpace(title)
		} else {
			t.Title = e.Name
		}
	}

	return t
}

func rawBPM(raw map[string]interface{}) float64 {
	for _, name := range bpmTags {
		var bpm float64

		switch v := raw[name].(type) {
		case string:
			bpm, _ = strconv.ParseFloat(strings.TrimSpace(v), 64)
		case int:
			bpm = float64(v)
		case float64:
			bpm = v
		}

		if bpm > 0 {
			return bpm
		}
	}

	return 0
}

// parseComment extracts the Camelot key and energy from a comment
func parseComment(comment string) (string, int) {
	var (
		key    string
		energy int
	)

	if m := keyRegex.FindStringSubmatch(comment); len(m) > 1 {
		key = m[1]
	}

	if m := energyRegex.FindStringSubmatch(comment); len(m) > 1 {
		energy, _ = strconv.Atoi(m[1])
	}

	return key, energy
}

func fileTitle(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Label returns "Artist - Title", or the title alone without an artist
func (t Track) Label() string {
	if t.Artist == "" {
		return t.Title
	}

	return t.Artist + " - " + t.Title
}

// String returns a one-line summary of the track
func (t Track) String() string {
	return fmt.Sprintf("%-40s  %-3s  E%-2d  %3.0f BPM", t.Label(), t.Key, t.Energy, t.BPM)
}
