package pagesim

import (
	"errors"

	"github.com/joshuapare/pagesim/mem/frame"
	"github.com/joshuapare/pagesim/proc"
)

var (
	// ErrInvalidConfiguration indicates startup sizes that are not powers of
	// two or violate page_size <= memory_size, max_process_size <= memory_size.
	ErrInvalidConfiguration = errors.New("pagesim: invalid configuration")

	// ErrFatalAllocation indicates physical memory could not be allocated.
	// The simulation cannot run without it.
	ErrFatalAllocation = errors.New("pagesim: cannot allocate physical memory")

	// ErrInvalidSize indicates a process size that is not a power of two or
	// exceeds the configured maximum.
	ErrInvalidSize = errors.New("pagesim: invalid process size")

	// ErrDuplicateID indicates a process id that is already in use.
	ErrDuplicateID = proc.ErrDuplicateID

	// ErrNotFound indicates an unknown process id.
	ErrNotFound = proc.ErrNotFound

	// ErrInsufficientFrames indicates fewer free frames than pages needed.
	ErrInsufficientFrames = frame.ErrInsufficientFrames
)
