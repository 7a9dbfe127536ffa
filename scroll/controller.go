// ABOUTME: Infinite-scroll controller: edge detection, single-flight loading, pull-to-refresh
// ABOUTME: Pure state machine driven by events and Bubble Tea messages, no rendering

// Package scroll decides when a scroll region is close enough to its content edge
// to load more, runs the caller's load operations one at a time, and tracks the
// pull-to-refresh gesture.
//
// The controller never blocks. Loads, throttle flushes, observer calls and the
// pull-down settle animation are returned as tea.Cmd values and report back via
// messages that must be passed to Update.
package scroll

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"playlist-feed/threshold"
)

const (
	// DefaultThrottleInterval limits scroll handling to one event per interval
	DefaultThrottleInterval = 150 * time.Millisecond

	// DefaultPullDownThreshold is the drag distance, in rows, that arms a refresh
	DefaultPullDownThreshold = 3

	settleInterval = time.Second / 30
)

var (
	ErrNextRequired    = errors.New("scroll: Next is required")
	ErrRefreshRequired = errors.New("scroll: pull down to refresh is enabled but Refresh is missing")
	ErrNoTarget        = errors.New("scroll: no scroll target to attach to")
	ErrAttached        = errors.New("scroll: controller is already attached")
	ErrLoadPanicked    = errors.New("scroll: load panicked")
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Config holds the controller options
type Config struct {
	// Next starts fetching more content. It is called on the update loop; the
	// returned command runs in the background and its message is handed back
	// in LoadedMsg.Result. Required.
	Next func() tea.Cmd

	HasMore bool

	// ScrollThreshold is a string ("120px", "80%") or number (percent).
	// Defaults to 80%.
	ScrollThreshold interface{}

	// Height > 0 means the controller's own region scrolls and is listened to.
	Height int

	// ScrollableTarget, or ScrollableTargetID looked up in the Environment,
	// names an ancestor that scrolls instead of the window.
	ScrollableTarget   Target
	ScrollableTargetID string

	// Inverse loads when nearing the top instead of the bottom
	Inverse bool

	// InitialScrollY scrolls the target once on attach, if its content is taller
	InitialScrollY *int

	PullDownToRefresh          bool
	PullDownToRefreshThreshold int
	Refresh                    func() tea.Cmd

	// OnScroll observes every throttled scroll event. It runs off the update
	// loop; a panic in it is logged and does not affect the controller.
	OnScroll func(Event)

	ThrottleInterval time.Duration
	Logf             func(format string, args ...interface{})
	Now              func() time.Time
}

// LoadedMsg reports the completion of one Next call.
// Hosts apply Result to their content before passing the message to Update.
type LoadedMsg struct {
	Result tea.Msg // Message produced by the command Next returned
	Err    error   // Result if it was an error, or a recovered panic

	id    int
	mount int
	job   int
}

type throttleMsg struct {
	id    int
	mount int
}

type settleMsg struct {
	id    int
	mount int
}

// Controller tracks one infinite-scroll region
type Controller struct {
	cfg   Config
	id    int
	mount int // Bumped on detach so messages from an earlier mount are ignored

	env            Environment
	self           Target
	el             Target // Surface whose events are handled
	scrollableNode Target
	attached       bool

	hasMore         bool
	showLoader      bool
	lastScrollTop   int
	actionTriggered bool // A scroll-triggered load is scheduled and not finished
	fillBlocked     bool // A load failed; no auto-fill until the host or the reader acts

	jobs            jobQueue
	throttle        throttler
	pull            gesture
	maxPullDistance int
}

// New validates the configuration and creates a detached controller
func New(cfg Config) (*Controller, error) {
	if cfg.Next == nil {
		return nil, ErrNextRequired
	}

	if cfg.PullDownToRefresh && cfg.Refresh == nil {
		return nil, ErrRefreshRequired
	}

	if cfg.ThrottleInterval <= 0 {
		cfg.ThrottleInterval = DefaultThrottleInterval
	}

	if cfg.PullDownToRefreshThreshold <= 0 {
		cfg.PullDownToRefreshThreshold = DefaultPullDownThreshold
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if cfg.Logf == nil {
		cfg.Logf = func(string, ...interface{}) {}
	}

	if _, err := threshold.Parse(cfg.ScrollThreshold); err != nil {
		cfg.Logf("[SCROLL] %v; using %s", err, threshold.Default)
		cfg.ScrollThreshold = threshold.Default
	}

	return &Controller{
		cfg:      cfg,
		id:       nextID(),
		hasMore:  cfg.HasMore,
		throttle: throttler{interval: cfg.ThrottleInterval},
	}, nil
}

// Attach resolves the surface to listen on and applies InitialScrollY.
// self is the controller's own region, used when Height is set.
func (c *Controller) Attach(env Environment, self Target) error {
	if c.attached {
		return ErrAttached
	}

	node := c.resolveScrollableNode(env)

	var el Target

	switch {
	case c.cfg.Height > 0:
		el = self
	case node != nil:
		el = node
	case env != nil:
		el = env.Window()
	}

	if el == nil {
		return ErrNoTarget
	}

	c.env = env
	c.self = self
	c.scrollableNode = node
	c.el = el
	c.attached = true

	if y := c.cfg.InitialScrollY; y != nil && !c.isWindow(c.el) && c.el.ScrollHeight() > *y {
		c.el.ScrollTo(*y)
	}

	return nil
}

func (c *Controller) resolveScrollableNode(env Environment) Target {
	if c.cfg.ScrollableTarget != nil {
		return c.cfg.ScrollableTarget
	}

	id := c.cfg.ScrollableTargetID
	if id == "" {
		return nil
	}

	var t Target
	if env != nil {
		t = env.Lookup(id)
	}

	if t == nil {
		c.cfg.Logf("[SCROLL] scrollable target %q not found, it may not be rendered yet; listening on the window", id)
	}

	return t
}

// Detach stops handling events and discards all scroll state
func (c *Controller) Detach() {
	if !c.attached {
		return
	}

	c.attached = false
	c.mount++
	c.env = nil
	c.self = nil
	c.el = nil
	c.scrollableNode = nil
	c.fillBlocked = false
	c.showLoader = false
	c.lastScrollTop = 0
	c.actionTriggered = false
	c.jobs = jobQueue{}
	c.throttle.reset()
	c.pull.reset()
}

// HandleEvent processes an input event from the attached surface
func (c *Controller) HandleEvent(ev Event) tea.Cmd {
	if !c.attached {
		return nil
	}

	if ev.Source != nil && ev.Source != c.el {
		return nil
	}

	switch ev.Kind {
	case EventScroll:
		c.fillBlocked = false

		return c.throttled(ev)
	case EventPointerDown:
		if c.cfg.PullDownToRefresh {
			c.onPullStart(ev)
		}
	case EventPointerMove:
		if c.cfg.PullDownToRefresh {
			c.pull.move(ev.Y, c.cfg.PullDownToRefreshThreshold, c.maxPullDistance)
		}
	case EventPointerUp:
		if c.cfg.PullDownToRefresh {
			return c.onPullEnd()
		}
	}

	return nil
}

// Update consumes the controller's own messages
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case throttleMsg:
		if !c.owns(msg.id, msg.mount) {
			return nil
		}

		if ev, ok := c.throttle.flush(c.cfg.Now()); ok {
			return c.onScroll(ev)
		}

	case LoadedMsg:
		if !c.owns(msg.id, msg.mount) || !c.jobs.running || msg.job != c.jobs.seq {
			return nil
		}

		return c.finishJob(msg)

	case settleMsg:
		if !c.owns(msg.id, msg.mount) {
			return nil
		}

		if c.pull.settle() {
			return c.settleFrame()
		}
	}

	return nil
}

// Owns reports whether a LoadedMsg was produced by this controller's current mount
func (c *Controller) Owns(msg LoadedMsg) bool {
	return c.owns(msg.id, msg.mount)
}

func (c *Controller) owns(id, mount int) bool {
	return c.attached && id == c.id && mount == c.mount
}

// CheckFill schedules a load when the content does not fill the target yet.
// Call it after every render pass. After a failed load it does nothing until
// ResumeFill, SetHasMore or a scroll event.
func (c *Controller) CheckFill() tea.Cmd {
	if !c.attached || !c.hasMore || c.fillBlocked || c.jobs.has(jobFill) {
		return nil
	}

	t := c.Target()
	if t == nil || t.ClientHeight() < t.ScrollHeight() {
		return nil
	}

	return c.schedule(jobFill)
}

func (c *Controller) throttled(ev Event) tea.Cmd {
	decision, wait := c.throttle.offer(ev, c.cfg.Now())

	switch decision {
	case throttleFire:
		return c.onScroll(ev)
	case throttleSchedule:
		id, mount := c.id, c.mount

		return tea.Tick(wait, func(time.Time) tea.Msg {
			return throttleMsg{id: id, mount: mount}
		})
	}

	return nil
}

func (c *Controller) onScroll(ev Event) tea.Cmd {
	var cmds []tea.Cmd

	if c.cfg.OnScroll != nil {
		cmds = append(cmds, c.observe(ev))
	}

	// A load is already on its way; don't trigger another one
	if !c.actionTriggered && c.hasMore && c.IsAtPositionToLoadMore() {
		c.actionTriggered = true
		cmds = append(cmds, c.schedule(jobScroll))
	}

	if t := c.Target(); t != nil {
		c.lastScrollTop = t.ScrollTop()
	}

	return tea.Batch(cmds...)
}

func (c *Controller) observe(ev Event) tea.Cmd {
	fn, logf := c.cfg.OnScroll, c.cfg.Logf

	return func() tea.Msg {
		defer func() {
			if r := recover(); r != nil {
				logf("[SCROLL] scroll observer panicked: %v", r)
			}
		}()

		fn(ev)

		return nil
	}
}

func (c *Controller) schedule(kind jobKind) tea.Cmd {
	if c.jobs.running {
		c.jobs.push(kind)

		return nil
	}

	return c.start(kind)
}

func (c *Controller) start(kind jobKind) tea.Cmd {
	c.jobs.running = true
	c.jobs.current = kind
	c.jobs.seq++
	c.showLoader = true

	id, mount, job := c.id, c.mount, c.jobs.seq
	next := c.cfg.Next()

	return func() tea.Msg {
		msg := LoadedMsg{id: id, mount: mount, job: job}
		msg.Result, msg.Err = runLoad(next)

		return msg
	}
}

func runLoad(cmd tea.Cmd) (result tea.Msg, err error) {
	if cmd == nil {
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrLoadPanicked, r)
		}
	}()

	result = cmd()
	if e, ok := result.(error); ok {
		err = e
	}

	return result, err
}

// finishJob clears the loading state whether or not the load succeeded, then
// starts the next queued job.
func (c *Controller) finishJob(msg LoadedMsg) tea.Cmd {
	if msg.Err != nil {
		c.cfg.Logf("[SCROLL] load failed: %v", msg.Err)
		c.fillBlocked = true
	}

	c.showLoader = false
	if c.jobs.current == jobScroll {
		c.actionTriggered = false
	}

	c.jobs.running = false

	kind, ok := c.jobs.pop()
	if !ok {
		return nil
	}

	return c.start(kind)
}

func (c *Controller) onPullStart(ev Event) {
	// Only start at the very top so the drag doesn't fight normal scrolling
	if c.lastScrollTop != 0 {
		return
	}

	c.pull.start(ev.Y)
}

func (c *Controller) onPullEnd() tea.Cmd {
	var cmds []tea.Cmd

	if c.pull.end() {
		cmds = append(cmds, c.cfg.Refresh())
	}

	cmds = append(cmds, c.settleFrame())

	return tea.Batch(cmds...)
}

func (c *Controller) settleFrame() tea.Cmd {
	if c.pull.offset == 0 {
		return nil
	}

	id, mount := c.id, c.mount

	return tea.Tick(settleInterval, func(time.Time) tea.Msg {
		return settleMsg{id: id, mount: mount}
	})
}

// Target returns the surface whose scroll position is measured
func (c *Controller) Target() Target {
	if c.cfg.Height > 0 || c.scrollableNode != nil {
		return c.el
	}

	if c.env == nil {
		return nil
	}

	// Page scroll may be reported on either surface
	if root := c.env.Root(); root != nil && root.ScrollTop() != 0 {
		return root
	}

	return c.env.Body()
}

// IsAtPositionToLoadMore reports whether the target is within the threshold of
// the edge being watched (bottom, or top when Inverse).
func (c *Controller) IsAtPositionToLoadMore() bool {
	t := c.Target()
	if t == nil {
		return false
	}

	spec, err := threshold.Parse(c.cfg.ScrollThreshold)
	if err != nil {
		spec = threshold.Default
	}

	clientHeight := float64(t.ClientHeight())
	if c.isPage(t) {
		clientHeight = float64(c.env.AvailHeight())
	}

	scrollTop := float64(t.ScrollTop())
	scrollHeight := float64(t.ScrollHeight())
	distance := spec.Distance(t.ScrollHeight())

	if c.cfg.Inverse {
		// +1 absorbs rounding at the top edge
		return scrollTop <= distance+clientHeight-scrollHeight+1
	}

	return scrollTop+clientHeight >= scrollHeight-distance
}

func (c *Controller) isWindow(t Target) bool {
	return c.env != nil && t == c.env.Window()
}

func (c *Controller) isPage(t Target) bool {
	return c.env != nil && (t == c.env.Root() || t == c.env.Body())
}

// SetHasMore updates whether more content is available
func (c *Controller) SetHasMore(v bool) {
	c.hasMore = v
	c.fillBlocked = false
}

// ResumeFill lets CheckFill load again after a failed load.
// Call it when the content changes.
func (c *Controller) ResumeFill() { c.fillBlocked = false }

// FillBlocked reports whether auto-fill is paused after a failed load
func (c *Controller) FillBlocked() bool { return c.fillBlocked }

// HasMore reports whether more content is available
func (c *Controller) HasMore() bool { return c.hasMore }

// ShowLoader reports whether a load is in flight and the loader should show
func (c *Controller) ShowLoader() bool { return c.showLoader }

// Loading reports whether a Next call is outstanding
func (c *Controller) Loading() bool { return c.jobs.running }

// Queued returns the number of loads waiting behind the outstanding one
func (c *Controller) Queued() int { return len(c.jobs.queued) }

// Attached reports whether the controller is handling events
func (c *Controller) Attached() bool { return c.attached }

// Dragging reports whether a pull gesture is active
func (c *Controller) Dragging() bool { return c.pull.phase != pullIdle }

// Breached reports whether the active pull has passed the refresh threshold
func (c *Controller) Breached() bool { return c.pull.phase == pullBreached }

// PullOffset returns how many rows the region is pulled down by
func (c *Controller) PullOffset() int { return c.pull.offset }

// SetMaxPullDistance sets the height of the pull-down indicator
func (c *Controller) SetMaxPullDistance(rows int) { c.maxPullDistance = rows }

// MaxPullDistance returns the height of the pull-down indicator
func (c *Controller) MaxPullDistance() int { return c.maxPullDistance }
