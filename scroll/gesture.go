// ABOUTME: Pull-to-refresh drag tracking as a small state machine
// ABOUTME: Idle -> Dragging -> Breached -> Idle, with the visual offset capped at 1.5x

package scroll

type pullPhase int

const (
	pullIdle pullPhase = iota
	pullDragging
	pullBreached // Only reachable from pullDragging
)

type gesture struct {
	phase    pullPhase
	startY   int
	currentY int
	offset   int // Rows the region is currently pulled down by
}

func (g *gesture) start(y int) {
	g.phase = pullDragging
	g.startY = y
	g.currentY = y
}

func (g *gesture) move(y, threshold, maxDistance int) {
	if g.phase == pullIdle {
		return
	}

	g.currentY = y

	// Moving back above the start point
	if g.currentY < g.startY {
		return
	}

	dist := g.currentY - g.startY
	if dist >= threshold {
		g.phase = pullBreached
	}

	if float64(dist) > float64(maxDistance)*1.5 {
		return
	}

	g.offset = dist
}

// end finishes the drag and reports whether the threshold was breached.
// The offset is left for the settle animation to bring back to rest.
func (g *gesture) end() bool {
	breached := g.phase == pullBreached
	g.phase = pullIdle
	g.startY = 0
	g.currentY = 0

	return breached
}

// settle moves the offset one frame closer to rest and reports whether more frames are needed
func (g *gesture) settle() bool {
	if g.phase != pullIdle {
		return false
	}

	step := g.offset / 3
	if step < 1 {
		step = 1
	}

	g.offset -= step
	if g.offset < 0 {
		g.offset = 0
	}

	return g.offset > 0
}

func (g *gesture) reset() {
	*g = gesture{}
}
