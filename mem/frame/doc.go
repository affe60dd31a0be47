// Package frame tracks which physical frames of simulated memory are free.
//
// # Overview
//
// Physical memory of T bytes with a frame size of P bytes is split into
// F = T/P frames indexed 0..F-1. A Pool hands frame indices to callers and
// remembers which are still free. It never touches frame contents; that is
// the job of package physmem.
//
// # Stack Pool
//
// Stack is the only implementation. The free pool is a stack of indices
// initialized to [0, 1, ..., F-1] with F-1 on top, so frames come out
// highest-index first:
//
//	s, _ := frame.NewStack(4)
//	got, _ := s.Allocate(2) // [3 2]
//	got, _ = s.Allocate(2)  // [1 0]
//	_, err := s.Allocate(1) // frame.ErrInsufficientFrames
//
// The order is observable through page tables and must not change to
// lowest-index-first.
//
// # All or Nothing
//
// Allocate either returns exactly the requested number of frames or fails
// with ErrInsufficientFrames leaving the pool untouched. There is no partial
// allocation, compaction or replacement.
//
// # Reclamation
//
// Simulated processes never terminate, so frames are never returned to the
// pool. Discarding the Stack discards the pool.
//
// # Thread Safety
//
// Stack instances are not thread-safe. Callers must synchronize access
// externally.
package frame
