// ABOUTME: Tests for transition scoring between tracks
// ABOUTME: Camelot wheel distances, genre relations and the rendered mark

package playlist

import (
	"errors"
	"testing"
)

func TestParseCamelotKey(t *testing.T) {
	tests := []struct {
		in      string
		want    CamelotKey
		wantErr bool
	}{
		{"8A", CamelotKey{Number: 8, Minor: true}, false},
		{"12b", CamelotKey{Number: 12, Minor: false}, false},
		{" 1B ", CamelotKey{Number: 1}, false},
		{"13A", CamelotKey{}, true},
		{"0A", CamelotKey{}, true},
		{"8C", CamelotKey{}, true},
		{"A", CamelotKey{}, true},
		{"", CamelotKey{}, true},
	}

	for _, tt := range tests {
		got, err := ParseCamelotKey(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidKey) {
				t.Errorf("ParseCamelotKey(%q) error = %v, want ErrInvalidKey", tt.in, err)
			}

			continue
		}

		if err != nil || got != tt.want {
			t.Errorf("ParseCamelotKey(%q) = %+v, %v; want %+v", tt.in, got, err, tt.want)
		}
	}

	if s := (CamelotKey{Number: 8, Minor: true}).String(); s != "8A" {
		t.Errorf("String() = %q, want 8A", s)
	}
}

func TestKeyDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"8A", "8A", 0},
		{"8A", "8B", 1},
		{"8A", "9A", 1},
		{"12A", "1A", 1},
		{"8A", "9B", 3},
		{"8A", "10A", 3},
		{"1A", "7A", 7},
		{"8A", "", -1},
		{"nope", "8A", -1},
	}

	for _, tt := range tests {
		if got := KeyDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("KeyDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRelateGenres(t *testing.T) {
	tests := []struct {
		a, b string
		want GenreRelation
	}{
		{"House", "house", GenreSame},
		{"dnb", "Drum and Bass", GenreSame},
		{"deep house", "house", GenreParent},
		{"electronic", "liquid", GenreParent},
		{"deep house", "tech house", GenreSibling},
		{"house", "techno", GenreSibling},
		{"deep house", "techno", GenreFamily},
		{"rock", "jazz", GenreUnrelated},
		{"polka", "house", GenreUnrelated},
		{"", "house", GenreUnknown},
	}

	for _, tt := range tests {
		if got := RelateGenres(tt.a, tt.b); got != tt.want {
			t.Errorf("RelateGenres(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestBetween_Mark(t *testing.T) {
	tests := []struct {
		name       string
		prev, next Track
		want       string
	}{
		{"same key same genre", Track{Key: "8A", Genre: "house"}, Track{Key: "8A", Genre: "house"}, "=·"},
		{"harmonic into a sibling", Track{Key: "8A", Genre: "deep house"}, Track{Key: "9A", Genre: "tech house"}, "♪·"},
		{"clash across the family", Track{Key: "8A", Genre: "deep house"}, Track{Key: "2B", Genre: "techno"}, "✗~"},
		{"genre jump, keys unknown", Track{Genre: "rock"}, Track{Genre: "jazz"}, " »"},
		{"nothing known", Track{}, Track{}, "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Between(tt.prev, tt.next).Mark(); got != tt.want {
				t.Errorf("Mark() = %q, want %q", got, tt.want)
			}
		})
	}
}
