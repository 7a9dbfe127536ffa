// ABOUTME: Shared fixtures for component tests
// ABOUTME: Clock, page recorder, content generator and a command runner

package tui

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"playlist-feed/scroll"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type pageMsg int

// recorder counts Next calls; each command yields the page number
type recorder struct {
	mu    sync.Mutex
	calls int
}

func (r *recorder) next() tea.Cmd {
	r.mu.Lock()
	r.calls++
	n := r.calls
	r.mu.Unlock()

	return func() tea.Msg { return pageMsg(n) }
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.calls
}

// lines renders n numbered lines
func lines(prefix string, n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s %02d", prefix, i)
	}

	return strings.Join(out, "\n")
}

type feedFixture struct {
	m     *Model
	rec   *recorder
	clock *fakeClock
}

// newFeed creates a component with a fixed width, a text loader and a fake clock
func newFeed(t *testing.T, opts Options) *feedFixture {
	t.Helper()

	f := &feedFixture{rec: &recorder{}, clock: newFakeClock()}

	if opts.Next == nil {
		opts.Next = f.rec.next
	}

	if opts.Width == 0 {
		opts.Width = 40
	}

	if opts.Loader == "" {
		opts.Loader = "Loading more"
	}

	opts.Now = f.clock.Now

	m, err := New(opts)
	require.NoError(t, err)
	f.m = m

	return f
}

// key sends a key outside the throttle window
func (f *feedFixture) key(k tea.KeyType) tea.Cmd {
	f.clock.Advance(time.Second)

	return f.m.Update(tea.KeyMsg{Type: k})
}

func (f *feedFixture) mouse(msg tea.MouseMsg) tea.Cmd {
	f.clock.Advance(time.Second)

	return f.m.Update(msg)
}

// run executes a command, expanding batches, and returns the non-nil messages
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, run(c)...)
		}

		return msgs
	}

	if msg == nil {
		return nil
	}

	return []tea.Msg{msg}
}

func loaded(msgs []tea.Msg) (scroll.LoadedMsg, bool) {
	for _, m := range msgs {
		if l, ok := m.(scroll.LoadedMsg); ok {
			return l, true
		}
	}

	return scroll.LoadedMsg{}, false
}
