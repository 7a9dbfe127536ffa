// ABOUTME: View rendering for the infinite-scroll component
// ABOUTME: Clips the own region, anchors inverse content to the bottom and draws the pull indicator

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the component
func (m *Model) View() string {
	var out string

	if m.self != nil {
		out = m.regionView()
	} else {
		out = m.body()
	}

	if offset := m.ctrl.PullOffset(); m.opts.PullDownToRefresh && offset > 0 {
		out = m.pulled(out, offset)
	}

	return out
}

// regionView renders the visible part of the own region. Short inverse
// content sits at the bottom of the region.
func (m *Model) regionView() string {
	view := m.region.View()

	if m.opts.Inverse {
		if gap := m.region.Height - m.region.TotalLineCount(); gap > 0 {
			// The viewport pads below the content; move the padding above it
			lines := strings.Split(view, "\n")
			if n := m.region.TotalLineCount(); n < len(lines) {
				lines = lines[:n]
			}

			view = strings.Repeat("\n", gap) + strings.Join(lines, "\n")
		}
	}

	return view
}

// pulled shifts out down by offset rows and shows the bottom of the
// indicator in the gap. The own region keeps its height.
func (m *Model) pulled(out string, offset int) string {
	style := pullDownStyle
	if m.width > 0 {
		style = style.Width(m.width)
	}

	indicator := strings.Split(style.Render(m.pullDownContent()), "\n")
	if offset < len(indicator) {
		indicator = indicator[len(indicator)-offset:]
	}

	for len(indicator) < offset {
		indicator = append([]string{""}, indicator...)
	}

	lines := append(indicator, strings.Split(out, "\n")...)
	if m.self != nil && len(lines) > m.region.Height {
		lines = lines[:m.region.Height]
	}

	return strings.Join(lines, "\n")
}

// Height returns the number of rows View currently renders
func (m *Model) Height() int {
	return lipgloss.Height(m.View())
}
