// ABOUTME: Single-flight queue for load-more jobs
// ABOUTME: One job runs at a time; later requests wait their turn in trigger order

package scroll

type jobKind int

const (
	jobScroll jobKind = iota // Triggered by scrolling near the edge
	jobFill                  // Triggered because the content does not fill the viewport
)

type jobQueue struct {
	running bool
	current jobKind
	seq     int // Identifies the running job in its LoadedMsg
	queued  []jobKind
}

// has reports whether a job of the given kind is running or waiting
func (q *jobQueue) has(kind jobKind) bool {
	if q.running && q.current == kind {
		return true
	}

	for _, k := range q.queued {
		if k == kind {
			return true
		}
	}

	return false
}

func (q *jobQueue) push(kind jobKind) {
	q.queued = append(q.queued, kind)
}

func (q *jobQueue) pop() (jobKind, bool) {
	if len(q.queued) == 0 {
		return 0, false
	}

	kind := q.queued[0]
	q.queued = q.queued[1:]

	return kind, true
}
