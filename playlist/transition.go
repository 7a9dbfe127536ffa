// ABOUTME: How well one track follows another in a feed
// ABOUTME: Camelot key distance plus the relation between genres in a small hierarchy

package playlist

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidKey is returned for strings that are not Camelot keys
var ErrInvalidKey = errors.New("invalid camelot key")

// CamelotKey is a position on the Camelot wheel
type CamelotKey struct {
	Number int  // 1-12
	Minor  bool // "A" keys are minor, "B" keys major
}

// ParseCamelotKey parses keys such as "8A" or "12B"
func ParseCamelotKey(s string) (CamelotKey, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return CamelotKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}

	mode := s[len(s)-1]
	if mode != 'A' && mode != 'B' {
		return CamelotKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}

	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 1 || n > 12 {
		return CamelotKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}

	return CamelotKey{Number: n, Minor: mode == 'A'}, nil
}

func (k CamelotKey) String() string {
	if k.Minor {
		return strconv.Itoa(k.Number) + "A"
	}

	return strconv.Itoa(k.Number) + "B"
}

// KeyDistance scores how smoothly key b follows key a:
// 0 same key, 1 relative major/minor or a neighbour in the same mode,
// 3 a neighbour in the other mode, larger the further apart.
// It returns -1 when either key is unknown.
func KeyDistance(a, b string) int {
	ka, errA := ParseCamelotKey(a)
	kb, errB := ParseCamelotKey(b)

	if errA != nil || errB != nil {
		return -1
	}

	steps := ka.Number - kb.Number
	if steps < 0 {
		steps = -steps
	}

	steps = min(steps, 12-steps)

	switch {
	case steps == 0 && ka.Minor == kb.Minor:
		return 0
	case steps == 0:
		return 1
	case steps == 1 && ka.Minor == kb.Minor:
		return 1
	case steps == 1:
		return 3
	default:
		return steps + 1
	}
}

// GenreRelation describes how two genres relate in the hierarchy
type GenreRelation int

const (
	GenreUnknown   GenreRelation = iota // Either genre is missing
	GenreSame                           // Identical after normalising
	GenreParent                         // One is an ancestor of the other
	GenreSibling                        // Same immediate parent
	GenreFamily                         // Same root category
	GenreUnrelated                      // Nothing in common
)

func (r GenreRelation) String() string {
	switch r {
	case GenreSame:
		return "same"
	case GenreParent:
		return "parent"
	case GenreSibling:
		return "sibling"
	case GenreFamily:
		return "family"
	case GenreUnrelated:
		return "unrelated"
	default:
		return "unknown"
	}
}

// genreParents maps a genre to its parent; root genres are absent
var genreParents = map[string]string{
	"liquid drum and bass": "drum and bass",
	"neurofunk":            "drum and bass",
	"jungle":               "drum and bass",
	"drum and bass":        "electronic",
	"deep house":           "house",
	"electro house":        "house",
	"progressive house":    "house",
	"tech house":           "house",
	"house":                "electronic",
	"dubstep":              "electronic",
	"breakbeat":            "electronic",
	"downtempo":            "electronic",
	"synthwave":            "electronic",
	"techno":               "electronic",
	"trance":               "electronic",
	"garage":               "electronic",
	"electro swing":        "electronic",
	"alternative":          "rock",
	"indie":                "rock",
	"punk":                 "rock",
	"metal":                "rock",
	"thrash metal":         "metal",
	"rap":                  "hip hop",
	"trap":                 "hip hop",
	"fusion":               "jazz",
	"acid jazz":            "jazz",
	"dub":                  "reggae",
	"roots reggae":         "reggae",
}

// genreAliases folds spelling variants into one name
var genreAliases = map[string]string{
	"dnb":     "drum and bass",
	"d&b":     "drum and bass",
	"hiphop":  "hip hop",
	"hip-hop": "hip hop",
	"liquid":  "liquid drum and bass",
}

func normalizeGenre(g string) string {
	g = strings.ToLower(strings.TrimSpace(g))
	if alias, ok := genreAliases[g]; ok {
		return alias
	}

	return g
}

// lineage returns the genre followed by its ancestors
func lineage(g string) []string {
	chain := []string{g}
	for parent, ok := genreParents[g]; ok; parent, ok = genreParents[parent] {
		chain = append(chain, parent)
	}

	return chain
}

// RelateGenres places two genres in the hierarchy
func RelateGenres(a, b string) GenreRelation {
	a, b = normalizeGenre(a), normalizeGenre(b)

	switch {
	case a == "" || b == "":
		return GenreUnknown
	case a == b:
		return GenreSame
	}

	la, lb := lineage(a), lineage(b)

	for _, g := range la[1:] {
		if g == b {
			return GenreParent
		}
	}

	for _, g := range lb[1:] {
		if g == a {
			return GenreParent
		}
	}

	if len(la) > 1 && len(lb) > 1 && la[1] == lb[1] {
		return GenreSibling
	}

	if la[len(la)-1] == lb[len(lb)-1] {
		return GenreFamily
	}

	return GenreUnrelated
}

// Transition describes the change from one track to the next
type Transition struct {
	KeyDistance int // -1 when a key is unknown
	Genre       GenreRelation
}

// Between describes the transition from prev to next
func Between(prev, next Track) Transition {
	return Transition{
		KeyDistance: KeyDistance(prev.Key, next.Key),
		Genre:       RelateGenres(prev.Genre, next.Genre),
	}
}

// Harmonic reports whether the keys mix well
func (t Transition) Harmonic() bool {
	return t.KeyDistance >= 0 && t.KeyDistance <= 2
}

// Mark renders the transition as two cells: key then genre
func (t Transition) Mark() string {
	keyMark := " "

	switch {
	case t.KeyDistance == 0:
		keyMark = "="
	case t.Harmonic():
		keyMark = "♪"
	case t.KeyDistance > 0:
		keyMark = "✗"
	}

	genreMark := " "

	switch t.Genre {
	case GenreSame, GenreParent, GenreSibling:
		genreMark = "·"
	case GenreFamily:
		genreMark = "~"
	case GenreUnrelated:
		genreMark = "»"
	}

	return keyMark + genreMark
}
