// ABOUTME: Serves a playlist page by page with tag metadata read in parallel
// ABOUTME: Reloads bump a generation counter so pages from before a reload can be discarded

package playlist

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"playlist-feed/pool"
)

var (
	// ErrInvalidPageSize is returned by NewPager for page sizes below one
	ErrInvalidPageSize = errors.New("page size must be positive")
	// ErrPagerClosed is returned by Next after Close
	ErrPagerClosed = errors.New("pager closed")
)

// Page is one batch of tracks
type Page struct {
	Tracks     []Track
	Offset     int  // Index of the first track in the playlist
	Total      int  // Tracks in the playlist
	HasMore    bool // More tracks follow this page
	Generation int  // Reload count when the page was read
}

// Pager reads a playlist incrementally
type Pager struct {
	path     string
	baseDir  string
	pageSize int
	pool     *pool.WorkerPool

	loadMu sync.Mutex // Serialises Next so pool batches don't mix
	closed bool       // Guarded by loadMu

	mu         sync.Mutex
	entries    []Entry
	offset     int
	generation int
}

// NewPager reads the playlist at path and prepares to serve it in pages of
// pageSize tracks, reading tags with the given number of workers.
func NewPager(path string, pageSize, workers int) (*Pager, error) {
	if pageSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, pageSize)
	}

	p := &Pager{
		path:     path,
		baseDir:  filepath.Dir(path),
		pageSize: pageSize,
	}

	if err := p.Reload(); err != nil {
		return nil, err
	}

	p.pool = pool.NewWorkerPool(workers)

	return p, nil
}

// Reload re-reads the playlist and starts again from the first page
func (p *Pager) Reload() error {
	entries, err := ReadPlaylist(p.path)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.entries = entries
	p.offset = 0
	p.generation++

	return nil
}

// Next reads the next page. An empty page with HasMore false means the end
// of the playlist was reached. Tracks whose tags cannot be read are listed
// with Err set.
func (p *Pager) Next(ctx context.Context) (Page, error) {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	if p.closed {
		return Page{}, ErrPagerClosed
	}

	p.mu.Lock()
	start := p.offset
	end := min(start+p.pageSize, len(p.entries))
	batch := p.entries[start:end]
	generation := p.generation
	total := len(p.entries)
	p.offset = end
	p.mu.Unlock()

	tracks := make([]Track, len(batch))

	for i, e := range batch {
		p.pool.Go(ctx, func(context.Context) error {
			t, err := GetTrackMetadata(e.Path, p.baseDir)
			if err != nil {
				tracks[i] = FallbackTrack(e, err)

				return nil
			}

			tracks[i] = *t

			return nil
		})
	}

	if err := p.pool.Wait(); err != nil {
		p.rewind(generation, start, end)

		return Page{}, fmt.Errorf("reading page at %d: %w", start, err)
	}

	return Page{
		Tracks:     tracks,
		Offset:     start,
		Total:      total,
		HasMore:    end < total,
		Generation: generation,
	}, nil
}

// rewind gives back a page that could not be read, unless a reload intervened
func (p *Pager) rewind(generation, start, end int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.generation == generation && p.offset == end {
		p.offset = start
	}
}

// Total returns the number of tracks in the playlist
func (p *Pager) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.entries)
}

// Generation returns the number of times the playlist was read
func (p *Pager) Generation() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.generation
}

// Path returns the playlist path
func (p *Pager) Path() string {
	return p.path
}

// Close waits for a running Next and stops the metadata workers
func (p *Pager) Close() {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	if p.closed {
		return
	}

	p.closed = true
	p.pool.Close()
}
