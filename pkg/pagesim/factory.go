package pagesim

import (
	"fmt"

	"github.com/joshuapare/pagesim/internal/pow2"
	"github.com/joshuapare/pagesim/proc"
)

// CreateProcess creates process pid of size bytes and maps it into free
// frames.
//
// The steps are:
//  1. reject a pid already in use (ErrDuplicateID)
//  2. reject a size that is not a power of two or exceeds MaxProcessSize
//     (ErrInvalidSize)
//  3. pages = ceil(size / PageSize)
//  4. take pages frames from the free stack (ErrInsufficientFrames)
//  5. fill size bytes of process contents
//  6. copy page i into frame PageTable[i]
//  7. register the process
//
// On any error the simulator is unchanged.
func (s *Simulator) CreateProcess(pid PID, size int) (ProcessInfo, error) {
	if s.reg.Contains(pid) {
		return s.reject(pid, size, fmt.Errorf("%w: %d", ErrDuplicateID, pid))
	}
	if err := s.CheckSize(size); err != nil {
		return s.reject(pid, size, err)
	}

	pages := s.mem.PagesFor(size)
	frames, err := s.mem.Allocate(pages)
	if err != nil {
		return s.reject(pid, size, err)
	}

	data := make([]byte, size)
	s.fill.Fill(data)
	if err := s.mem.WritePages(frames, data); err != nil {
		// Unreachable unless physmem is broken.
		return ProcessInfo{}, fmt.Errorf("pagesim: write pages of %d: %w", pid, err)
	}

	p := &proc.Process{ID: pid, Size: size, PageTable: frames}
	if err := s.reg.Register(p); err != nil {
		return ProcessInfo{}, fmt.Errorf("pagesim: register %d: %w", pid, err)
	}

	s.log.Debug("process created",
		"pid", pid,
		"size", size,
		"pages", pages,
		"frames", frames,
		"free_frames", s.mem.FreeFrames(),
	)
	return ProcessInfo{PID: pid, Size: size, Pages: pages}, nil
}

// CheckSize reports whether CreateProcess would accept size, returning
// ErrInvalidSize if not.
func (s *Simulator) CheckSize(size int) error {
	if !pow2.IsPowerOfTwo(size) {
		return fmt.Errorf("%w: %d is not a power of 2", ErrInvalidSize, size)
	}
	if size > s.cfg.MaxProcessSize {
		return fmt.Errorf("%w: %d exceeds maximum of %d bytes", ErrInvalidSize, size, s.cfg.MaxProcessSize)
	}
	return nil
}

func (s *Simulator) reject(pid PID, size int, err error) (ProcessInfo, error) {
	s.log.Info("process rejected", "pid", pid, "size", size, "error", err)
	return ProcessInfo{}, err
}
