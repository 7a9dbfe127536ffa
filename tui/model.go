// ABOUTME: Infinite-scroll Bubble Tea component and its lifecycle
// ABOUTME: Wires the scroll controller to a viewport region, a spinner loader and key bindings

// Package tui provides an infinite-scroll component for Bubble Tea programs.
//
// The component renders host-supplied content followed by a loader or end
// message, asks for more content through Options.Next when the reader nears
// the edge, and supports pull-to-refresh with the mouse.
//
// Hosts embed a *Model, call Init once when it is shown, forward messages to
// Update and call Close when it goes away. When Next's command completes the
// host receives a scroll.LoadedMsg: apply its Result to the content first,
// then pass the message to Update.
package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"playlist-feed/scroll"
)

// ErrNoEnvironment is returned when nothing could be scrolled: no Height,
// no ScrollableTarget and no Environment.
var ErrNoEnvironment = errors.New("tui: an environment or scrollable target is required without a height")

// Default indicator content
const (
	DefaultPullDownContent = "↓ Pull down to refresh"
	DefaultReleaseContent  = "↑ Release to refresh"
)

const wheelDelta = 3 // Lines per mouse wheel notch

// KeyMap defines the scrolling bindings of the component's own region
type KeyMap struct {
	LineUp   key.Binding
	LineDown key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
}

// DefaultKeyMap returns the default scrolling bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		LineUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		LineDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup/b", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f", " "),
			key.WithHelp("pgdn/f", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "bottom"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.LineUp, k.LineDown, k.Top, k.Bottom}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.LineUp, k.LineDown, k.PageUp, k.PageDown},
		{k.Top, k.Bottom},
	}
}

// Styles
var (
	loaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	endStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	pullDownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Align(lipgloss.Center)
)

// Model is the infinite-scroll component
type Model struct {
	opts   Options
	ctrl   *scroll.Controller
	debugf func(string, ...interface{})

	// Own scroll region, only used when Height > 0
	region viewport.Model
	self   *ViewportTarget

	spinner spinner.Model
	keys    KeyMap
	content string
	width   int
}

// New validates opts and creates an unmounted component
func New(opts Options) (*Model, error) {
	if opts.Height <= 0 && opts.ScrollableTarget == nil && opts.Environment == nil {
		return nil, ErrNoEnvironment
	}

	if opts.Debugf == nil {
		opts.Debugf = func(string, ...interface{}) {}
	}

	if opts.PullDownToRefreshContent == "" {
		opts.PullDownToRefreshContent = DefaultPullDownContent
	}

	if opts.ReleaseToRefreshContent == "" {
		opts.ReleaseToRefreshContent = DefaultReleaseContent
	}

	ctrl, err := scroll.New(opts.scrollConfig())
	if err != nil {
		return nil, err
	}

	m := &Model{
		opts:   opts,
		ctrl:   ctrl,
		debugf: opts.Debugf,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(loaderStyle),
		),
		keys:  DefaultKeyMap(),
		width: opts.Width,
	}

	if opts.Height > 0 {
		m.region = viewport.New(opts.Width, opts.Height)
		m.region.MouseWheelEnabled = false // Wheel is handled here so it raises scroll events
		m.self = NewViewportTarget(&m.region, opts.Inverse)
	}

	m.render()

	return m, nil
}

// Init mounts the component: it attaches to its scroll target, applies the
// initial scroll position and fills the viewport if it is not full yet.
func (m *Model) Init() tea.Cmd {
	var self scroll.Target
	if m.self != nil {
		self = m.self
	}

	if err := m.ctrl.Attach(m.opts.Environment, self); err != nil {
		m.debugf("[FEED] Attach failed: %v", err)

		return nil
	}

	m.ctrl.SetMaxPullDistance(lipgloss.Height(m.opts.PullDownToRefreshContent))
	m.debugf("[FEED] Mounted (height=%d inverse=%v pull=%v)", m.opts.Height, m.opts.Inverse, m.opts.PullDownToRefresh)

	cmds := []tea.Cmd{m.sync()}
	if m.opts.Loader == "" {
		cmds = append(cmds, m.spinner.Tick)
	}

	return tea.Batch(cmds...)
}

// Close unmounts the component. Messages from before Close are ignored.
func (m *Model) Close() {
	m.ctrl.Detach()
	m.debugf("[FEED] Unmounted")
}

// SetContent replaces the children
func (m *Model) SetContent(s string) tea.Cmd {
	m.content = s
	m.ctrl.ResumeFill()

	return m.sync()
}

// SetHasMore updates whether Next can produce more content
func (m *Model) SetHasMore(v bool) tea.Cmd {
	m.ctrl.SetHasMore(v)

	return m.sync()
}

// SetWidth fixes the render width
func (m *Model) SetWidth(w int) {
	m.width = w
	m.region.Width = w
	m.render()
}

// Controller exposes the scroll state
func (m *Model) Controller() *scroll.Controller {
	return m.ctrl
}

// Region returns the component's own scroll region, or nil without a Height
func (m *Model) Region() *ViewportTarget {
	return m.self
}

// KeyMap returns the scrolling bindings
func (m *Model) KeyMap() KeyMap {
	return m.keys
}

// render pushes the current state to the scroll surface the component draws into
func (m *Model) render() {
	if m.self != nil {
		m.self.SetContent(m.body())

		return
	}

	if page, ok := m.opts.Environment.(interface{ SetContent(string) }); ok && m.opts.ScrollableTarget == nil && m.opts.ScrollableTargetID == "" {
		page.SetContent(m.View())
	}
}

// sync renders and then checks whether the content fills the target
func (m *Model) sync() tea.Cmd {
	m.render()

	return m.ctrl.CheckFill()
}
