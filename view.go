// ABOUTME: Playlist feed screen: tracks stream in page by page as the reader scrolls
// ABOUTME: Watches the playlist file and refreshes on change, pull-down or the reload key

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"playlist-feed/config"
	"playlist-feed/playlist"
	"playlist-feed/scroll"
	"playlist-feed/tui"
)

// Messages
type (
	fileChangeMsg struct{}

	// pageMsg is the Result of a load started by the feed
	pageMsg struct {
		page playlist.Page
	}

	reloadedMsg struct {
		generation int
		total      int
		err        error
	}
)

// feedKeyMap adds the screen's own bindings to the feed's scrolling bindings
type feedKeyMap struct {
	tui.KeyMap
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newFeedKeyMap(scrolling tui.KeyMap) feedKeyMap {
	return feedKeyMap{
		KeyMap: scrolling,
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k feedKeyMap) ShortHelp() []key.Binding {
	return append(k.KeyMap.ShortHelp(), k.Reload, k.Help, k.Quit)
}

// FullHelp implements help.KeyMap
func (k feedKeyMap) FullHelp() [][]key.Binding {
	return append(k.KeyMap.FullHelp(), []key.Binding{k.Reload, k.Help, k.Quit})
}

// Styles for the feed screen
var (
	viewTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	viewHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	viewStatusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252"))

	viewErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	viewMissingStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))
)

// feedModel holds the state of the feed screen
type feedModel struct {
	cfg     config.Config
	pager   *playlist.Pager
	watcher *fsnotify.Watcher // nil when not watching

	feed *tui.Model
	// Page mode only: the screen's viewport the feed renders into
	host viewport.Model
	page *tui.Page

	keys feedKeyMap
	help help.Model

	ctx    context.Context //nolint:containedctx // Cancels page reads when the screen closes
	cancel context.CancelFunc

	tracks     []playlist.Track
	generation int // Pager generation the tracks belong to
	total      int
	lastReload time.Time
	errorMsg   string
	width      int
	height     int
}

// newFeedModel builds the screen. cfg.Height == 0 gives the feed the whole
// screen by rendering it into the screen's viewport; otherwise the feed gets
// a region of its own.
func newFeedModel(cfg config.Config, pager *playlist.Pager, watcher *fsnotify.Watcher) (*feedModel, error) {
	ctx, cancel := context.WithCancel(context.Background())

	m := &feedModel{
		cfg:        cfg,
		pager:      pager,
		watcher:    watcher,
		help:       help.New(),
		ctx:        ctx,
		cancel:     cancel,
		generation: pager.Generation(),
		total:      pager.Total(),
		lastReload: time.Now(),
	}

	opts := tui.Options{
		Next:                       m.next,
		HasMore:                    m.total > 0,
		ScrollThreshold:            cfg.ScrollThreshold,
		Height:                     cfg.Height,
		Inverse:                    cfg.Inverse,
		InitialScrollY:             cfg.InitialScrollY,
		PullDownToRefresh:          cfg.PullDownToRefresh,
		PullDownToRefreshThreshold: cfg.PullDownThreshold,
		Refresh:                    m.reload,
		OnScroll: func(ev scroll.Event) {
			debugf("[FEED] %v event", ev.Kind)
		},
		EndMessage:       cfg.EndMessage,
		ThrottleInterval: cfg.ThrottleInterval(),
		Debugf:           debugf,
	}

	if cfg.Height == 0 {
		m.host = viewport.New(80, 20)
		m.host.MouseWheelEnabled = false
		m.page = tui.NewPage(&m.host, cfg.Inverse)
		opts.Environment = m.page
	}

	feed, err := tui.New(opts)
	if err != nil {
		cancel()

		return nil, err
	}

	m.feed = feed
	m.keys = newFeedKeyMap(feed.KeyMap())

	return m, nil
}

// RunFeed shows the playlist at path as an infinite feed
func RunFeed(cfg config.Config, path string) error {
	pager, err := playlist.NewPager(path, cfg.PageSize, cfg.Workers)
	if err != nil {
		return fmt.Errorf("failed to open playlist: %w", err)
	}

	var watcher *fsnotify.Watcher

	if cfg.Watch {
		watcher, err = fsnotify.NewWatcher()
		if err != nil {
			pager.Close()

			return fmt.Errorf("failed to create file watcher: %w", err)
		}

		if err := watcher.Add(path); err != nil {
			watcher.Close()
			pager.Close()

			return fmt.Errorf("failed to watch playlist file: %w", err)
		}
	}

	m, err := newFeedModel(cfg, pager, watcher)
	if err != nil {
		if watcher != nil {
			watcher.Close()
		}

		pager.Close()

		return err
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running feed: %w", err)
	}

	return nil
}

// Close stops loading, watching and the feed
func (m *feedModel) Close() {
	m.cancel()
	m.feed.Close()

	if m.watcher != nil {
		m.watcher.Close()
	}

	m.pager.Close()
}

// Init mounts the feed and starts watching the playlist
func (m *feedModel) Init() tea.Cmd {
	return tea.Batch(
		m.feed.Init(),
		waitForFileChange(m.watcher),
	)
}

// next starts reading the next page
func (m *feedModel) next() tea.Cmd {
	pager, ctx := m.pager, m.ctx

	return func() tea.Msg {
		page, err := pager.Next(ctx)
		if err != nil {
			return err
		}

		return pageMsg{page: page}
	}
}

// reload re-reads the playlist from disk
func (m *feedModel) reload() tea.Cmd {
	pager := m.pager

	return func() tea.Msg {
		if err := pager.Reload(); err != nil {
			return reloadedMsg{err: err}
		}

		return reloadedMsg{generation: pager.Generation(), total: pager.Total()}
	}
}

// waitForFileChange returns a command that waits for the playlist to be written
func waitForFileChange(watcher *fsnotify.Watcher) tea.Cmd {
	if watcher == nil {
		return nil
	}

	return func() tea.Msg {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}

				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					// Debounce: wait a bit for atomic writes to complete
					time.Sleep(100 * time.Millisecond)

					return fileChangeMsg{}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}

				debugf("[WATCHER] Error: %v", err)
			}
		}
	}
}

// Update handles messages and updates the model
func (m *feedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()

		return m, m.feed.Update(msg)

	case fileChangeMsg:
		debugf("[WATCHER] Playlist changed, reloading")

		return m, tea.Batch(m.reload(), waitForFileChange(m.watcher))

	case reloadedMsg:
		return m, m.applyReload(msg)

	case scroll.LoadedMsg:
		return m, m.applyLoad(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reload):
			return m, m.reload()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()

			return m, nil
		}
	}

	return m, m.feed.Update(msg)
}

// applyLoad adds a loaded page to the tracks before handing the message to the feed
func (m *feedModel) applyLoad(msg scroll.LoadedMsg) tea.Cmd {
	if !m.feed.Controller().Owns(msg) {
		return nil
	}

	var cmds []tea.Cmd

	if res, ok := msg.Result.(pageMsg); ok {
		if res.page.Generation == m.generation {
			m.tracks = append(m.tracks, res.page.Tracks...)
			m.total = res.page.Total
			m.errorMsg = ""
			cmds = append(cmds, m.feed.SetHasMore(res.page.HasMore), m.feed.SetContent(m.renderRows()))
		} else {
			debugf("[FEED] Dropped page from generation %d (now %d)", res.page.Generation, m.generation)
		}
	}

	if msg.Err != nil {
		m.errorMsg = fmt.Sprintf("Error loading: %v", msg.Err)
	}

	cmds = append(cmds, m.feed.Update(msg))

	return tea.Batch(cmds...)
}

// applyReload starts the feed over from the first page
func (m *feedModel) applyReload(msg reloadedMsg) tea.Cmd {
	if msg.err != nil {
		m.errorMsg = fmt.Sprintf("Error reloading: %v", msg.err)

		return nil
	}

	m.generation = msg.generation
	m.total = msg.total
	m.tracks = nil
	m.lastReload = time.Now()
	m.errorMsg = ""

	if t := m.surface(); t != nil {
		t.ScrollTo(0)
	}

	return tea.Batch(m.feed.SetHasMore(msg.total > 0), m.feed.SetContent(""))
}

// surface returns the viewport the feed scrolls
func (m *feedModel) surface() *tui.ViewportTarget {
	if m.page != nil {
		return m.page.Target()
	}

	return m.feed.Region()
}

// resize fits the page-mode viewport between the title and the status lines
func (m *feedModel) resize() {
	if m.page == nil || m.height == 0 {
		return
	}

	m.host.Width = m.width
	m.host.Height = max(1, m.height-m.chromeHeight())
}

func (m *feedModel) chromeHeight() int {
	return 3 + lipgloss.Height(m.help.View(m.keys)) // Title, header, status and help
}

// renderRows renders the loaded tracks, newest page last, or first when inverse
func (m *feedModel) renderRows() string {
	n := len(m.tracks)
	lines := make([]string, n)

	for i := range n {
		idx := i
		if m.cfg.Inverse {
			idx = n - 1 - i
		}

		t := m.tracks[idx]

		mark := "  "

		if i > 0 {
			prev := m.tracks[idx-1]
			if m.cfg.Inverse {
				prev = m.tracks[idx+1]
			}

			mark = playlist.Between(prev, t).Mark()
		}

		line := fmt.Sprintf("%4d %s %s", idx+1, mark, t.String())
		if t.Err != nil {
			line = viewMissingStyle.Render(line)
		}

		lines[i] = line
	}

	return strings.Join(lines, "\n")
}

// View renders the screen
func (m *feedModel) View() string {
	title := viewTitleStyle.Render("Playlist feed: " + truncate(m.pager.Path(), max(20, m.width-15)))
	header := viewHeaderStyle.Render(fmt.Sprintf("%4s %-2s %-40s  %-3s  %-3s  %s", "#", "", "Track", "Key", "En", "BPM"))

	body := m.feed.View()
	if m.page != nil {
		body = m.host.View()
	} else if gap := m.height - m.chromeHeight() - m.feed.Height(); m.height > 0 && gap > 0 {
		// Keep the status bar at the bottom of the screen
		body += strings.Repeat("\n", gap)
	}

	return strings.Join([]string{title, header, body, m.renderStatus(), m.help.View(m.keys)}, "\n")
}

// renderStatus renders the status bar
func (m *feedModel) renderStatus() string {
	ctrl := m.feed.Controller()

	parts := []string{fmt.Sprintf("%d/%d tracks", len(m.tracks), m.total)}

	switch {
	case ctrl.Loading():
		parts = append(parts, "loading")
	case !ctrl.HasMore():
		parts = append(parts, "all loaded")
	}

	if m.errorMsg != "" {
		parts = append(parts, viewErrorStyle.Render(m.errorMsg))
	} else {
		parts = append(parts, "Last reload: "+m.lastReload.Format("15:04:05"))
	}

	return viewStatusStyle.Width(m.width).Render(strings.Join(parts, " | "))
}
