// Package proc keeps the simulated processes and their page tables.
package proc

import (
	"errors"
	"fmt"
	"slices"
)

// PID identifies a simulated process. Any int is a valid PID; uniqueness is
// what matters.
type PID = int

// initialCapacity matches the number of process slots reserved up front;
// the registry doubles it whenever it fills up.
const initialCapacity = 10

var (
	// ErrDuplicateID indicates a PID that is already registered.
	ErrDuplicateID = errors.New("proc: duplicate process id")

	// ErrNotFound indicates a PID with no registered process.
	ErrNotFound = errors.New("proc: process not found")
)

// Process is one simulated process. PageTable[i] is the frame holding
// logical page i.
type Process struct {
	ID        PID
	Size      int
	PageTable []int
}

// Pages returns the number of pages, which is also len(PageTable).
func (p *Process) Pages() int {
	return len(p.PageTable)
}

// Clone returns a deep copy so callers cannot alter the registered page table.
func (p *Process) Clone() *Process {
	return &Process{
		ID:        p.ID,
		Size:      p.Size,
		PageTable: slices.Clone(p.PageTable),
	}
}

func (p *Process) String() string {
	return fmt.Sprintf("pid=%d size=%d pages=%d", p.ID, p.Size, p.Pages())
}
