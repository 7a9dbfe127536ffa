// ABOUTME: Adapters exposing bubbles viewports as scroll targets and host pages
// ABOUTME: Inverse targets measure their offset from the bottom, like a column-reverse region

package tui

import (
	"github.com/charmbracelet/bubbles/viewport"

	"playlist-feed/scroll"
)

// ViewportTarget exposes a viewport as a scroll.Target
type ViewportTarget struct {
	vp      *viewport.Model
	inverse bool // Rest at the bottom and report offsets <= 0
}

// NewViewportTarget wraps vp. The viewport must outlive the target.
func NewViewportTarget(vp *viewport.Model, inverse bool) *ViewportTarget {
	return &ViewportTarget{vp: vp, inverse: inverse}
}

// ScrollTop returns the offset of the first visible line.
// Inverse targets return the negated distance from the bottom.
func (t *ViewportTarget) ScrollTop() int {
	if t.inverse {
		return t.vp.YOffset - t.maxOffset()
	}

	return t.vp.YOffset
}

// ScrollHeight returns the number of content lines
func (t *ViewportTarget) ScrollHeight() int {
	return t.vp.TotalLineCount()
}

// ClientHeight returns the number of visible lines
func (t *ViewportTarget) ClientHeight() int {
	return t.vp.Height
}

// ScrollTo moves to y, using the same coordinates as ScrollTop
func (t *ViewportTarget) ScrollTo(y int) {
	if t.inverse {
		y += t.maxOffset()
	}

	t.vp.SetYOffset(y)
}

// ScrollBy moves n lines down (negative for up) and reports whether the offset changed
func (t *ViewportTarget) ScrollBy(n int) bool {
	before := t.vp.YOffset
	t.vp.SetYOffset(before + n)

	return t.vp.YOffset != before
}

// GotoTop scrolls to the first line and reports whether the offset changed
func (t *ViewportTarget) GotoTop() bool {
	return t.ScrollBy(-t.vp.YOffset)
}

// GotoBottom scrolls to the last page and reports whether the offset changed
func (t *ViewportTarget) GotoBottom() bool {
	return t.ScrollBy(t.maxOffset() - t.vp.YOffset)
}

// SetContent replaces the content. Inverse targets keep their distance from
// the bottom so lines added above don't move what is on screen.
func (t *ViewportTarget) SetContent(s string) {
	if !t.inverse {
		t.vp.SetContent(s)

		return
	}

	fromBottom := t.maxOffset() - t.vp.YOffset
	t.vp.SetContent(s)
	t.vp.SetYOffset(t.maxOffset() - fromBottom)
}

// Viewport returns the wrapped viewport
func (t *ViewportTarget) Viewport() *viewport.Model {
	return t.vp
}

func (t *ViewportTarget) maxOffset() int {
	return max(0, t.vp.TotalLineCount()-t.vp.Height)
}

// Page is a scroll.Environment backed by a host viewport that fills the screen.
// The window, document root and body are all the same surface.
type Page struct {
	target *ViewportTarget
	named  map[string]scroll.Target
}

// NewPage creates a page around vp
func NewPage(vp *viewport.Model, inverse bool) *Page {
	return &Page{
		target: NewViewportTarget(vp, inverse),
		named:  make(map[string]scroll.Target),
	}
}

// Register makes t available to components by id
func (p *Page) Register(id string, t scroll.Target) {
	p.named[id] = t
}

// Lookup returns the target registered under id, or nil
func (p *Page) Lookup(id string) scroll.Target {
	if t, ok := p.named[id]; ok {
		return t
	}

	return nil
}

func (p *Page) Window() scroll.Target { return p.target }
func (p *Page) Root() scroll.Target   { return p.target }
func (p *Page) Body() scroll.Target   { return p.target }

// AvailHeight returns the rows the page has on screen
func (p *Page) AvailHeight() int {
	return p.target.vp.Height
}

// SetContent renders s as the page content
func (p *Page) SetContent(s string) {
	p.target.SetContent(s)
}

// Target returns the page's scroll surface
func (p *Page) Target() *ViewportTarget {
	return p.target
}
