// ABOUTME: Infinite-scroll component configuration
// ABOUTME: Scroll controller options plus the content shown around the children

package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"playlist-feed/scroll"
)

// Options configures a Model. See scroll.Config for the scrolling options.
type Options struct {
	Next            func() tea.Cmd // Required; starts fetching the next page
	HasMore         bool
	ScrollThreshold interface{} // "120px", "80%" or a number (percent)

	// Height > 0 gives the component its own scroll region of that many rows.
	// Otherwise it listens on ScrollableTarget, ScrollableTargetID or the
	// Environment's window.
	Height             int
	Width              int // 0 follows the terminal width
	ScrollableTarget   scroll.Target
	ScrollableTargetID string
	Environment        scroll.Environment

	Inverse        bool
	InitialScrollY *int

	PullDownToRefresh          bool
	PullDownToRefreshThreshold int
	Refresh                    func() tea.Cmd
	PullDownToRefreshContent   string
	ReleaseToRefreshContent    string

	OnScroll func(scroll.Event)

	Loader      string // Empty shows a spinner
	EndMessage  string
	ClassName   string
	HasChildren bool // Treat the component as having children even before content is set

	ThrottleInterval time.Duration
	Now              func() time.Time
	Debugf           func(format string, args ...interface{})
}

func (o Options) scrollConfig() scroll.Config {
	return scroll.Config{
		Next:                       o.Next,
		HasMore:                    o.HasMore,
		ScrollThreshold:            o.ScrollThreshold,
		Height:                     o.Height,
		ScrollableTarget:           o.ScrollableTarget,
		ScrollableTargetID:         o.ScrollableTargetID,
		Inverse:                    o.Inverse,
		InitialScrollY:             o.InitialScrollY,
		PullDownToRefresh:          o.PullDownToRefresh,
		PullDownToRefreshThreshold: o.PullDownToRefreshThreshold,
		Refresh:                    o.Refresh,
		OnScroll:                   o.OnScroll,
		ThrottleInterval:           o.ThrottleInterval,
		Logf:                       o.Debugf,
		Now:                        o.Now,
	}
}
