package proc

import "fmt"

// Registry is an insertion-ordered collection of processes with unique PIDs.
//
// NOT thread-safe.
type Registry struct {
	procs []*Process
	index map[PID]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		procs: make([]*Process, 0, initialCapacity),
		index: make(map[PID]int, initialCapacity),
	}
}

// Register appends p. It fails with ErrDuplicateID if p.ID is taken, in which
// case the registry is unchanged.
func (r *Registry) Register(p *Process) error {
	if _, ok := r.index[p.ID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
	}
	if len(r.procs) == cap(r.procs) {
		r.grow()
	}
	r.index[p.ID] = len(r.procs)
	r.procs = append(r.procs, p)
	return nil
}

// grow doubles capacity.
func (r *Registry) grow() {
	next := make([]*Process, len(r.procs), max(2*cap(r.procs), initialCapacity))
	copy(next, r.procs)
	r.procs = next
}

// Contains reports whether pid is registered.
func (r *Registry) Contains(pid PID) bool {
	_, ok := r.index[pid]
	return ok
}

// Find returns the process registered under pid.
func (r *Registry) Find(pid PID) (*Process, bool) {
	i, ok := r.index[pid]
	if !ok {
		return nil, false
	}
	return r.procs[i], true
}

// Lookup is Find returning ErrNotFound instead of a flag.
func (r *Registry) Lookup(pid PID) (*Process, error) {
	p, ok := r.Find(pid)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, pid)
	}
	return p, nil
}

// All returns the processes in registration order. The slice is a copy; the
// processes are shared.
func (r *Registry) All() []*Process {
	out := make([]*Process, len(r.procs))
	copy(out, r.procs)
	return out
}

// Len returns the number of registered processes.
func (r *Registry) Len() int {
	return len(r.procs)
}

// Cap returns the current slot capacity.
func (r *Registry) Cap() int {
	return cap(r.procs)
}

// Owners maps every frame referenced by a page table to its process.
func (r *Registry) Owners() map[int]PID {
	owners := make(map[int]PID)
	for _, p := range r.procs {
		for _, f := range p.PageTable {
			owners[f] = p.ID
		}
	}
	return owners
}
