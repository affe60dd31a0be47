// Package dirty records which byte ranges of simulated physical memory were
// written since the last flush, so a file-backed store can be synced
// page by page instead of as a whole.
package dirty

import (
	"context"
	"os"
	"sort"

	"github.com/joshuapare/pagesim/internal/pow2"
)

// defaultRangeCapacity is the pre-allocated capacity for dirty ranges.
const defaultRangeCapacity = 64

// Range is a dirty byte range within the store.
type Range struct {
	Off int
	Len int
}

// End returns the exclusive end offset.
func (r Range) End() int { return r.Off + r.Len }

// Syncer writes a byte range of the store through to durable storage.
type Syncer interface {
	Sync(off, n int) error
}

// Tracker accumulates dirty ranges and flushes them coalesced.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Tracker struct {
	ranges   []Range
	pageSize int
	limit    int
}

// NewTracker creates a tracker for a store of limit bytes. Ranges are aligned
// to the OS page size at flush time and clamped to limit.
func NewTracker(limit int) *Tracker {
	return NewTrackerWithPageSize(limit, os.Getpagesize())
}

// NewTrackerWithPageSize is NewTracker with an explicit alignment.
// pageSize must be a power of two.
func NewTrackerWithPageSize(limit, pageSize int) *Tracker {
	return &Tracker{
		ranges:   make([]Range, 0, defaultRangeCapacity),
		pageSize: pageSize,
		limit:    limit,
	}
}

// Add records a dirty range. Empty ranges are ignored.
func (t *Tracker) Add(off, length int) {
	if length <= 0 {
		return
	}
	t.ranges = append(t.ranges, Range{Off: off, Len: length})
}

// Pending reports whether any range is waiting to be flushed.
func (t *Tracker) Pending() bool {
	return len(t.ranges) > 0
}

// Ranges returns the coalesced, page-aligned ranges that Flush would sync.
func (t *Tracker) Ranges() []Range {
	return t.coalesce()
}

// Flush syncs every coalesced range through s and clears the tracker.
//
// The context is checked between ranges. If cancelled, ranges already synced
// stay synced and the tracker keeps all of its ranges for the next attempt.
func (t *Tracker) Flush(ctx context.Context, s Syncer) error {
	if len(t.ranges) == 0 {
		return nil
	}
	for _, r := range t.coalesce() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Sync(r.Off, r.Len); err != nil {
			return err
		}
	}
	t.Reset()
	return nil
}

// Reset clears all tracked ranges.
func (t *Tracker) Reset() {
	t.ranges = t.ranges[:0]
}

// coalesce page-aligns all ranges, sorts them, and merges overlapping/adjacent ranges.
func (t *Tracker) coalesce() []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	aligned := make([]Range, len(t.ranges))
	for i, r := range t.ranges {
		start := pow2.AlignDown(r.Off, t.pageSize)
		end := min(pow2.AlignUp(r.End(), t.pageSize), t.limit)
		aligned[i] = Range{Off: start, Len: end - start}
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].Off < aligned[j].Off
	})

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]
	for _, next := range aligned[1:] {
		if next.Off <= current.End() {
			if next.End() > current.End() {
				current.Len = next.End() - current.Off
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}
