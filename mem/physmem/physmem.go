// Package physmem models the simulated physical memory: a zeroed byte store
// of TotalSize bytes carved into frames of PageSize bytes, the pool of free
// frames, and the copy of logical pages into and out of frames.
package physmem

import (
	"context"
	"errors"
	"fmt"

	"github.com/joshuapare/pagesim/internal/backing"
	"github.com/joshuapare/pagesim/internal/buf"
	"github.com/joshuapare/pagesim/internal/pow2"
	"github.com/joshuapare/pagesim/mem/dirty"
	"github.com/joshuapare/pagesim/mem/frame"
)

var (
	// ErrGeometry indicates sizes that are not powers of two or a page
	// larger than memory.
	ErrGeometry = errors.New("physmem: invalid memory geometry")

	// ErrBacking indicates the backing store could not be allocated.
	ErrBacking = errors.New("physmem: cannot allocate backing store")

	// ErrPageTable indicates a page table that does not fit the data written
	// or read through it.
	ErrPageTable = errors.New("physmem: page table does not match data")
)

// Options controls how the backing store is created.
type Options struct {
	// BackingFile mirrors memory into this file. Empty means an anonymous
	// mapping.
	BackingFile string
}

// Memory is simulated physical memory.
//
// NOT thread-safe.
type Memory struct {
	store    *backing.Store
	pool     *frame.Stack
	dt       *dirty.Tracker
	pageSize int
}

// New allocates totalSize bytes of zeroed storage split into
// totalSize/pageSize frames, all free. Both sizes must be powers of two with
// pageSize <= totalSize. A backing store failure is reported as ErrBacking;
// there is no way to run without one.
func New(totalSize, pageSize int, opts Options) (*Memory, error) {
	if !pow2.IsPowerOfTwo(totalSize) || !pow2.IsPowerOfTwo(pageSize) || pageSize > totalSize {
		return nil, fmt.Errorf("%w: total=%d page=%d", ErrGeometry, totalSize, pageSize)
	}

	var (
		store *backing.Store
		err   error
	)
	if opts.BackingFile != "" {
		store, err = backing.OpenFile(opts.BackingFile, totalSize)
	} else {
		store, err = backing.Anonymous(totalSize)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBacking, err)
	}

	// Exact: both sizes are powers of two and pageSize <= totalSize.
	pool, err := frame.NewStack(totalSize / pageSize)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Memory{
		store:    store,
		pool:     pool,
		dt:       dirty.NewTracker(totalSize),
		pageSize: pageSize,
	}, nil
}

// TotalSize returns the memory size in bytes.
func (m *Memory) TotalSize() int { return m.store.Len() }

// PageSize returns the frame size in bytes.
func (m *Memory) PageSize() int { return m.pageSize }

// Frames returns the number of frames.
func (m *Memory) Frames() int { return m.pool.Frames() }

// FreeFrames returns the number of free frames.
func (m *Memory) FreeFrames() int { return m.pool.FreeCount() }

// Occupancy returns one flag per frame, true when in use.
func (m *Memory) Occupancy() []bool { return m.pool.Occupancy() }

// BackingFile returns the mirror file path, or "".
func (m *Memory) BackingFile() string { return m.store.Path() }

// Allocate reserves n frames. See frame.Pool.Allocate.
func (m *Memory) Allocate(n int) ([]frame.Index, error) {
	return m.pool.Allocate(n)
}

// PagesFor returns how many frames size bytes occupy.
func (m *Memory) PagesFor(size int) int {
	return pow2.CeilDiv(size, m.pageSize)
}

// WritePages copies data into frames, page by page: bytes
// [i*PageSize, min((i+1)*PageSize, len(data))) land at the start of frame
// table[i]. A short final page leaves the rest of its frame untouched.
func (m *Memory) WritePages(table []frame.Index, data []byte) error {
	if len(table) != m.PagesFor(len(data)) {
		return fmt.Errorf("%w: %d frames for %d bytes", ErrPageTable, len(table), len(data))
	}
	store := m.store.Bytes()
	for page, f := range table {
		start, _, err := buf.FrameSpan(len(store), f, m.pageSize)
		if err != nil {
			return fmt.Errorf("physmem: page %d: %w", page, err)
		}
		chunk := data[page*m.pageSize : min((page+1)*m.pageSize, len(data))]
		dst, ok := buf.Slice(store, start, len(chunk))
		if !ok {
			return fmt.Errorf("physmem: page %d: %d bytes at %d out of range", page, len(chunk), start)
		}
		copy(dst, chunk)
		m.dt.Add(start, len(chunk))
	}
	return nil
}

// ReadPages reassembles size logical bytes from the frames in table.
func (m *Memory) ReadPages(table []frame.Index, size int) ([]byte, error) {
	if size < 0 || len(table) != m.PagesFor(size) {
		return nil, fmt.Errorf("%w: %d frames for %d bytes", ErrPageTable, len(table), size)
	}
	out := make([]byte, size)
	store := m.store.Bytes()
	for page, f := range table {
		start, _, err := buf.FrameSpan(len(store), f, m.pageSize)
		if err != nil {
			return nil, fmt.Errorf("physmem: page %d: %w", page, err)
		}
		lo := page * m.pageSize
		hi := min(lo+m.pageSize, size)
		src, ok := buf.Slice(store, start, hi-lo)
		if !ok {
			return nil, fmt.Errorf("physmem: page %d: %d bytes at %d out of range", page, hi-lo, start)
		}
		copy(out[lo:hi], src)
	}
	return out, nil
}

// Frame returns a copy of frame i.
func (m *Memory) Frame(i frame.Index) ([]byte, error) {
	store := m.store.Bytes()
	start, end, err := buf.FrameSpan(len(store), i, m.pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", frame.ErrBadIndex, err)
	}
	out := make([]byte, end-start)
	copy(out, store[start:end])
	return out, nil
}

// Flush writes frames modified since the last flush through to the backing
// file. It is a no-op for anonymous memory.
func (m *Memory) Flush(ctx context.Context) error {
	if !m.store.FileBacked() {
		m.dt.Reset()
		return nil
	}
	return m.dt.Flush(ctx, m.store)
}

// Close releases the backing store. Memory must not be used afterwards.
func (m *Memory) Close() error {
	return m.store.Close()
}
