package frame

import "fmt"

// Stack is a Pool whose free list behaves as a stack: the most recently
// added free index is handed out first. Initially index Frames()-1 is on top.
type Stack struct {
	free []Index // free[len(free)-1] is the top
	used []bool
}

var _ Pool = (*Stack)(nil)

// NewStack creates a pool of n frames, all free.
func NewStack(n int) (*Stack, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrFrameCount, n)
	}
	free := make([]Index, n)
	for i := range free {
		free[i] = i
	}
	return &Stack{
		free: free,
		used: make([]bool, n),
	}, nil
}

// Allocate pops n frames off the free stack.
// Allocate(0) succeeds with an empty slice.
func (s *Stack) Allocate(n int) ([]Index, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadRequest, n)
	}
	if len(s.free) < n {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientFrames, n, len(s.free))
	}

	out := make([]Index, n)
	top := len(s.free)
	for i := range out {
		top--
		out[i] = s.free[top]
		s.used[out[i]] = true
	}
	s.free = s.free[:top]
	return out, nil
}

// Frames returns the pool size.
func (s *Stack) Frames() int {
	return len(s.used)
}

// FreeCount returns the number of free frames.
func (s *Stack) FreeCount() int {
	return len(s.free)
}

// IsFree reports whether frame i is free.
func (s *Stack) IsFree(i Index) bool {
	if i < 0 || i >= len(s.used) {
		return false
	}
	return !s.used[i]
}

// Occupancy returns a copy of the per-frame in-use flags.
func (s *Stack) Occupancy() []bool {
	out := make([]bool, len(s.used))
	copy(out, s.used)
	return out
}
