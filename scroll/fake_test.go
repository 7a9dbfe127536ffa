// ABOUTME: In-memory scroll surfaces, environment and clock for controller tests
// ABOUTME: Also provides a helper that executes commands and collects their messages

package scroll

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeTarget struct {
	name       string
	top        int
	height     int
	client     int
	scrolledTo []int
}

func (f *fakeTarget) ScrollTop() int    { return f.top }
func (f *fakeTarget) ScrollHeight() int { return f.height }
func (f *fakeTarget) ClientHeight() int { return f.client }

func (f *fakeTarget) ScrollTo(y int) {
	f.top = y
	f.scrolledTo = append(f.scrolledTo, y)
}

type fakeEnv struct {
	window *fakeTarget
	root   *fakeTarget
	body   *fakeTarget
	named  map[string]*fakeTarget
	avail  int
}

func newFakeEnv() *fakeEnv {
	return &fakeEnv{
		window: &fakeTarget{name: "window"},
		root:   &fakeTarget{name: "root", height: 100, client: 10},
		body:   &fakeTarget{name: "body", height: 100, client: 10},
		named:  map[string]*fakeTarget{},
		avail:  20,
	}
}

func (e *fakeEnv) Window() Target   { return e.window }
func (e *fakeEnv) Root() Target     { return e.root }
func (e *fakeEnv) Body() Target     { return e.body }
func (e *fakeEnv) AvailHeight() int { return e.avail }

func (e *fakeEnv) Lookup(id string) Target {
	if t, ok := e.named[id]; ok {
		return t
	}

	return nil
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// recorder counts Next calls and hands out commands whose results are page numbers
type recorder struct {
	mu    sync.Mutex
	calls int
}

type pageMsg int

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

type logRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (l *logRecorder) logf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *logRecorder) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.lines...)
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

// loaded returns the LoadedMsg among msgs
func loaded(msgs []tea.Msg) (LoadedMsg, bool) {
	for _, m := range msgs {
		if l, ok := m.(LoadedMsg); ok {
			return l, true
		}
	}

	return LoadedMsg{}, false
}
