package frame

// Index identifies one physical frame, 0..Frames()-1.
type Index = int

// Pool defines the interface for free-frame management.
//
// Implementations:
//   - Stack: last-added-first-removed free list
type Pool interface {
	// Allocate removes exactly n frames from the free pool and returns them in
	// selection order. If fewer than n frames are free it returns
	// ErrInsufficientFrames and the pool is unchanged.
	Allocate(n int) ([]Index, error)

	// Frames returns the total number of frames, free or not.
	Frames() int

	// FreeCount returns the number of frames currently free.
	FreeCount() int

	// IsFree reports whether frame i is free. Out-of-range indices are not free.
	IsFree(i Index) bool

	// Occupancy returns one flag per frame, true when the frame is in use.
	Occupancy() []bool
}
