// ABOUTME: Tests for flag parsing, config resolution and text helpers
// ABOUTME: Covers command-line overrides on top of the TOML config

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playlist-feed/config"
)

func TestResolveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.toml")
	require.NoError(t, os.WriteFile(path, []byte("page_size = 10\nheight = 8\nwatch = true\n"), 0o600))

	cfg, err := ResolveConfig(RunOptions{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 8, cfg.Height)

	cfg, err = ResolveConfig(RunOptions{ConfigPath: path, PageSize: 50, Height: 20, Inverse: true, NoWatch: true})
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, 20, cfg.Height)
	assert.True(t, cfg.Inverse)
	assert.False(t, cfg.Watch)
}

func TestResolveConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.toml")
	require.NoError(t, os.WriteFile(path, []byte("scroll_threshold = \"far\"\n"), 0o600))

	_, err := ResolveConfig(RunOptions{ConfigPath: path})
	assert.True(t, errors.Is(err, config.ErrInvalidConfig), "got %v", err)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		wantOK bool
		want   RunOptions
	}{
		{
			name:   "playlist only",
			args:   []string{"list.m3u8"},
			wantOK: true,
			want:   RunOptions{PlaylistPath: "list.m3u8"},
		},
		{
			name:   "overrides",
			args:   []string{"-page-size", "5", "-inverse", "-no-watch", "list.m3u8"},
			wantOK: true,
			want:   RunOptions{PlaylistPath: "list.m3u8", PageSize: 5, Inverse: true, NoWatch: true},
		},
		{
			name:   "write config without playlist",
			args:   []string{"-write-config"},
			wantOK: true,
			want:   RunOptions{WriteConfig: true},
		},
		{name: "no playlist", args: nil},
		{name: "two playlists", args: []string{"a.m3u8", "b.m3u8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseFlags(tt.args)
			assert.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a longer string", 10, "a longe..."},
		{"abcdef", 3, "abc"},
		{"ümläüts everywhere", 8, "ümläü..."},
		{"日本語の曲名", 7, "日本..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}
