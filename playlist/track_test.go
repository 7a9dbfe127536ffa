// ABOUTME: Tests for track metadata helpers
// ABOUTME: Comment parsing, raw BPM tags, fallbacks and unreadable files

package playlist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseComment(t *testing.T) {
	tests := []struct {
		comment    string
		wantKey    string
		wantEnergy int
	}{
		{"8A - Energy 6", "8A", 6},
		{"12B - Energy 10", "12B", 10},
		{"Energy 4", "", 4},
		{"great tune", "", 0},
		{"", "", 0},
	}

	for _, tt := range tests {
		key, energy := parseComment(tt.comment)
		if key != tt.wantKey || energy != tt.wantEnergy {
			t.Errorf("parseComment(%q) = %q, %d; want %q, %d", tt.comment, key, energy, tt.wantKey, tt.wantEnergy)
		}
	}
}

func TestRawBPM(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
		want float64
	}{
		{"id3 string", map[string]interface{}{"TBPM": "174"}, 174},
		{"padded string", map[string]interface{}{"BPM": " 128 "}, 128},
		{"int", map[string]interface{}{"tempo": 90}, 90},
		{"float", map[string]interface{}{"bpm": 87.5}, 87.5},
		{"garbage falls through", map[string]interface{}{"TBPM": "fast", "BPM": "140"}, 140},
		{"missing", map[string]interface{}{}, 0},
		{"nil map", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rawBPM(tt.raw); got != tt.want {
				t.Errorf("rawBPM() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFallbackTrack(t *testing.T) {
	cause := errors.New("no tags")

	tests := []struct {
		name       string
		entry      Entry
		wantArtist string
		wantTitle  string
	}{
		{"file name", Entry{Path: "Music/Calibre/02 Running.mp3"}, "", "02 Running"},
		{"extinf artist and title", Entry{Path: "x.mp3", Name: "Calibre - Running"}, "Calibre", "Running"},
		{"extinf title only", Entry{Path: "x.mp3", Name: "Radio"}, "", "Radio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackTrack(tt.entry, cause)

			if got.Artist != tt.wantArtist || got.Title != tt.wantTitle {
				t.Errorf("FallbackTrack() = %q / %q, want %q / %q", got.Artist, got.Title, tt.wantArtist, tt.wantTitle)
			}

			if !errors.Is(got.Err, cause) {
				t.Errorf("Err = %v, want %v", got.Err, cause)
			}

			if got.Path != tt.entry.Path {
				t.Errorf("Path = %q, want %q", got.Path, tt.entry.Path)
			}
		})
	}
}

func TestGetTrackMetadata_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := GetTrackMetadata("missing.mp3", dir); err == nil {
		t.Error("Expected error for a missing file")
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.mp3"), []byte("not audio"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := GetTrackMetadata("notes.mp3", dir); err == nil {
		t.Error("Expected error for a file without tags")
	}
}

func TestTrack_Label(t *testing.T) {
	if got := (Track{Artist: "Calibre", Title: "Running"}).Label(); got != "Calibre - Running" {
		t.Errorf("Label() = %q", got)
	}

	if got := (Track{Title: "Running"}).Label(); got != "Running" {
		t.Errorf("Label() without artist = %q", got)
	}
}
