package pagesim

import (
	"fmt"

	"github.com/joshuapare/pagesim/mem/frame"
)

// Dump returns the logical contents of pid, read back from its frames in
// page order.
func (s *Simulator) Dump(pid PID) ([]byte, error) {
	p, err := s.reg.Lookup(pid)
	if err != nil {
		return nil, err
	}
	data, err := s.mem.ReadPages(p.PageTable, p.Size)
	if err != nil {
		return nil, fmt.Errorf("pagesim: dump %d: %w", pid, err)
	}
	return data, nil
}

// Frame returns a copy of physical frame i.
func (s *Simulator) Frame(i int) ([]byte, error) {
	if i < 0 || i >= s.mem.Frames() {
		return nil, fmt.Errorf("%w: %d of %d", frame.ErrBadIndex, i, s.mem.Frames())
	}
	return s.mem.Frame(i)
}
