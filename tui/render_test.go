// ABOUTME: Tests for render tree lookups
// ABOUTME: Class matching is by whole marker, not by prefix

package tui

import "testing"

func TestNode_Find(t *testing.T) {
	tree := &Node{
		Class: ClassOuter,
		Children: []*Node{{
			Class: ClassScroll + " tracks",
			Children: []*Node{
				{Class: ClassChildren, Text: "a"},
				{Class: ClassLoader, Text: "..."},
			},
		}},
	}

	tests := []struct {
		class string
		want  int
	}{
		{ClassOuter, 1},
		{ClassScroll, 1},
		{"tracks", 1},
		{ClassLoader, 1},
		{ClassEnd, 0},
		{"infinite", 0},
	}

	for _, tt := range tests {
		if got := len(tree.Find(tt.class)); got != tt.want {
			t.Errorf("Find(%q) found %d nodes, want %d", tt.class, got, tt.want)
		}
	}
}
