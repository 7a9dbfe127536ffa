// ABOUTME: Message handling for the infinite-scroll component
// ABOUTME: Maps keys and mouse input to scroll events and routes controller messages

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"playlist-feed/scroll"
)

// Update handles a message and returns follow-up commands.
// Messages meant for other components are ignored.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case scroll.LoadedMsg:
		if !m.ctrl.Owns(msg) {
			return nil
		}

		if msg.Err != nil {
			m.debugf("[FEED] Load finished with error: %v", msg.Err)
		}

		cmd := m.ctrl.Update(msg)

		return tea.Batch(cmd, m.sync())

	case spinner.TickMsg:
		if m.opts.Loader != "" || msg.ID != m.spinner.ID() {
			return nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		if m.loaderVisible() {
			m.render()
		}

		return cmd

	case tea.WindowSizeMsg:
		if m.opts.Width == 0 {
			m.SetWidth(msg.Width)
		}

		return m.sync()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	// Throttle flushes and settle frames
	cmd := m.ctrl.Update(msg)
	m.render()

	return cmd
}

// HandleEvent forwards an event from a host-owned scroll surface
func (m *Model) HandleEvent(ev scroll.Event) tea.Cmd {
	cmd := m.ctrl.HandleEvent(ev)

	return tea.Batch(cmd, m.sync())
}

// surface returns the viewport input scrolls, if the component can reach one
func (m *Model) surface() *ViewportTarget {
	if m.self != nil {
		return m.self
	}

	if t, ok := m.opts.ScrollableTarget.(*ViewportTarget); ok {
		return t
	}

	if p, ok := m.opts.Environment.(*Page); ok && m.opts.ScrollableTargetID == "" {
		return p.Target()
	}

	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := m.surface()
	if s == nil {
		return nil
	}

	var moved bool

	switch {
	case key.Matches(msg, m.keys.LineUp):
		moved = s.ScrollBy(-1)
	case key.Matches(msg, m.keys.LineDown):
		moved = s.ScrollBy(1)
	case key.Matches(msg, m.keys.PageUp):
		moved = s.ScrollBy(-s.ClientHeight())
	case key.Matches(msg, m.keys.PageDown):
		moved = s.ScrollBy(s.ClientHeight())
	case key.Matches(msg, m.keys.Top):
		moved = s.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		moved = s.GotoBottom()
	}

	if !moved {
		return nil
	}

	return m.HandleEvent(scroll.Event{Kind: scroll.EventScroll, Source: s})
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	s := m.surface()
	if s == nil {
		return nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		if s.ScrollBy(-wheelDelta) {
			return m.HandleEvent(scroll.Event{Kind: scroll.EventScroll, Source: s})
		}

	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		if s.ScrollBy(wheelDelta) {
			return m.HandleEvent(scroll.Event{Kind: scroll.EventScroll, Source: s})
		}

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		return m.HandleEvent(scroll.Event{Kind: scroll.EventPointerDown, Source: s, Y: msg.Y})

	case msg.Action == tea.MouseActionMotion:
		if m.ctrl.Dragging() {
			return m.HandleEvent(scroll.Event{Kind: scroll.EventPointerMove, Source: s, Y: msg.Y})
		}

	case msg.Action == tea.MouseActionRelease:
		return m.HandleEvent(scroll.Event{Kind: scroll.EventPointerUp, Source: s, Y: msg.Y})
	}

	return nil
}
