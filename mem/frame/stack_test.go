package frame

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewStack_AllFree tests that a fresh pool has every frame free.
func TestNewStack_AllFree(t *testing.T) {
	s, err := NewStack(8)
	require.NoError(t, err)

	assert.Equal(t, 8, s.Frames())
	assert.Equal(t, 8, s.FreeCount())
	for i := range 8 {
		assert.True(t, s.IsFree(i), "frame %d should be free", i)
	}
	assert.Equal(t, []Index{0, 1, 2, 3, 4, 5, 6, 7}, s.free)
	requireConsistent(t, s)
}

// TestNewStack_RejectsBadCount tests construction with no frames.
func TestNewStack_RejectsBadCount(t *testing.T) {
	for _, n := range []int{0, -1, -1024} {
		_, err := NewStack(n)
		require.ErrorIs(t, err, ErrFrameCount, "NewStack(%d)", n)
	}
}

// TestStack_SinglePageOrder tests that k single-frame allocations return
// F-1, F-2, ..., F-k.
func TestStack_SinglePageOrder(t *testing.T) {
	const frames = 16
	s, err := NewStack(frames)
	require.NoError(t, err)

	for k := 1; k <= frames; k++ {
		got, err := s.Allocate(1)
		require.NoError(t, err, "allocation %d", k)
		require.Equal(t, []Index{frames - k}, got)
		assert.Equal(t, frames-k, s.FreeCount())
	}
	requireConsistent(t, s)
}

// TestStack_MultiFrameOrder tests that one request takes frames from the top
// of the stack in pop order.
func TestStack_MultiFrameOrder(t *testing.T) {
	s, err := NewStack(4)
	require.NoError(t, err)

	got, err := s.Allocate(2)
	require.NoError(t, err)
	assert.Equal(t, []Index{3, 2}, got)
	assert.Equal(t, 2, s.FreeCount())

	got, err = s.Allocate(2)
	require.NoError(t, err)
	assert.Equal(t, []Index{1, 0}, got)
	assert.Equal(t, 0, s.FreeCount())
}

// TestStack_InsufficientLeavesPoolUnchanged tests the all-or-nothing rule.
func TestStack_InsufficientLeavesPoolUnchanged(t *testing.T) {
	s, err := NewStack(4)
	require.NoError(t, err)

	_, err = s.Allocate(3)
	require.NoError(t, err)
	before := slices.Clone(s.free)
	occBefore := s.Occupancy()

	got, err := s.Allocate(2)
	require.ErrorIs(t, err, ErrInsufficientFrames)
	assert.Nil(t, got)
	assert.Equal(t, 1, s.FreeCount())
	assert.Equal(t, before, s.free)
	assert.Equal(t, occBefore, s.Occupancy())

	// The remaining frame is still available.
	got, err = s.Allocate(1)
	require.NoError(t, err)
	assert.Equal(t, []Index{0}, got)
}

// TestStack_ZeroAndNegative tests degenerate requests.
func TestStack_ZeroAndNegative(t *testing.T) {
	s, err := NewStack(2)
	require.NoError(t, err)

	got, err := s.Allocate(0)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 2, s.FreeCount())

	_, err = s.Allocate(-1)
	require.ErrorIs(t, err, ErrBadRequest)
	assert.Equal(t, 2, s.FreeCount())
}

// TestStack_OccupancyTracksAllocations tests per-frame flags.
func TestStack_OccupancyTracksAllocations(t *testing.T) {
	s, err := NewStack(4)
	require.NoError(t, err)

	_, err = s.Allocate(1)
	require.NoError(t, err)

	assert.Equal(t, []bool{false, false, false, true}, s.Occupancy())
	assert.False(t, s.IsFree(3))
	assert.True(t, s.IsFree(0))
	assert.False(t, s.IsFree(-1), "out of range is never free")
	assert.False(t, s.IsFree(4), "out of range is never free")

	// Occupancy returns a copy.
	occ := s.Occupancy()
	occ[0] = true
	assert.True(t, s.IsFree(0))
}

// TestStack_ExhaustionSequence tests mixed request sizes against the pool
// invariants until the pool runs dry.
func TestStack_ExhaustionSequence(t *testing.T) {
	const frames = 64
	s, err := NewStack(frames)
	require.NoError(t, err)

	seen := make(map[Index]bool)
	next := frames - 1
	for _, n := range []int{1, 2, 4, 8, 16, 32, 2, 1} {
		free := s.FreeCount()
		got, err := s.Allocate(n)
		if n > free {
			require.ErrorIs(t, err, ErrInsufficientFrames)
			continue
		}
		require.NoError(t, err)
		for _, f := range got {
			require.False(t, seen[f], "frame %d handed out twice", f)
			require.Equal(t, next, f)
			seen[f] = true
			next--
		}
		requireConsistent(t, s)
	}
	assert.Equal(t, frames-len(seen), s.FreeCount())
}

// requireConsistent fails the test unless the free stack and the occupancy
// flags agree.
func requireConsistent(t *testing.T, s *Stack) {
	t.Helper()
	seen := make([]bool, len(s.used))
	for _, f := range s.free {
		require.True(t, f >= 0 && f < len(s.used), "free list holds %d", f)
		require.False(t, seen[f], "%d appears twice in free list", f)
		require.False(t, s.used[f], "%d is both free and in use", f)
		seen[f] = true
	}
	inUse := 0
	for _, u := range s.used {
		if u {
			inUse++
		}
	}
	require.Equal(t, len(s.used), inUse+len(s.free))
}
