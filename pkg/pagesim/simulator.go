package pagesim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/joshuapare/pagesim/internal/logger"
	"github.com/joshuapare/pagesim/mem/physmem"
	"github.com/joshuapare/pagesim/proc"
)

// Options carries collaborators that do not belong in a config file.
type Options struct {
	// Logger receives simulator events. Nil means logger.L.
	Logger *slog.Logger

	// Filler produces process contents. Nil means a RandomFiller seeded
	// with Config.Seed.
	Filler Filler
}

// Simulator is one paging simulation: physical memory plus the processes
// mapped into it.
type Simulator struct {
	cfg     Config
	mem     *physmem.Memory
	reg     *proc.Registry
	fill    Filler
	log     *slog.Logger
	session uuid.UUID
}

// Initialize starts a simulation with anonymous memory and default
// collaborators. The three sizes must be powers of two with
// pageSize <= totalSize and maxProcessSize <= totalSize.
func Initialize(totalSize, pageSize, maxProcessSize int) (*Simulator, error) {
	cfg := DefaultConfig()
	cfg.MemorySize = totalSize
	cfg.PageSize = pageSize
	cfg.MaxProcessSize = maxProcessSize
	return New(*cfg, nil)
}

// New validates cfg and allocates physical memory. opts may be nil.
//
// Errors:
//   - ErrInvalidConfiguration: sizes violate the power-of-two or ordering rules
//   - ErrFatalAllocation: the backing store could not be allocated
func New(cfg Config, opts *Options) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &Options{}
	}

	mem, err := physmem.New(cfg.MemorySize, cfg.PageSize, physmem.Options{BackingFile: cfg.BackingFile})
	if err != nil {
		if errors.Is(err, physmem.ErrBacking) {
			return nil, fmt.Errorf("%w: %w", ErrFatalAllocation, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	fill := opts.Filler
	if fill == nil {
		fill = NewRandomFiller(cfg.Seed)
	}
	session := uuid.New()
	log := opts.Logger
	if log == nil {
		log = logger.L
	}
	log = log.With("session", session.String())

	log.Info("physical memory initialized",
		"total_size", cfg.MemorySize,
		"page_size", cfg.PageSize,
		"frames", mem.Frames(),
		"max_process_size", cfg.MaxProcessSize,
		"backing_file", cfg.BackingFile,
	)

	return &Simulator{
		cfg:     cfg,
		mem:     mem,
		reg:     proc.NewRegistry(),
		fill:    fill,
		log:     log,
		session: session,
	}, nil
}

// Config returns the configuration the simulator was built with.
func (s *Simulator) Config() Config { return s.cfg }

// Session returns the unique id of this simulation run.
func (s *Simulator) Session() string { return s.session.String() }

// MaxProcessSize returns the largest size CreateProcess accepts.
func (s *Simulator) MaxProcessSize() int { return s.cfg.MaxProcessSize }

// Contains reports whether pid is in use.
func (s *Simulator) Contains(pid PID) bool { return s.reg.Contains(pid) }

// ProcessCount returns the number of processes created.
func (s *Simulator) ProcessCount() int { return s.reg.Len() }

// MemoryStatus reports memory geometry, free frames and per-frame state.
func (s *Simulator) MemoryStatus() MemoryStatus {
	owners := s.reg.Owners()
	occupied := s.mem.Occupancy()
	frames := make([]FrameState, len(occupied))
	for i, used := range occupied {
		frames[i] = FrameState{Index: i, Free: !used}
		if used {
			frames[i].Owner = owners[i]
		}
	}
	return MemoryStatus{
		TotalSize:  s.mem.TotalSize(),
		PageSize:   s.mem.PageSize(),
		Frames:     s.mem.Frames(),
		FreeFrames: s.mem.FreeFrames(),
		FrameState: frames,
	}
}

// PageTableOf returns a copy of pid's page table, or ErrNotFound.
func (s *Simulator) PageTableOf(pid PID) (PageTable, error) {
	p, err := s.reg.Lookup(pid)
	if err != nil {
		return PageTable{}, err
	}
	return pageTableOf(p), nil
}

func pageTableOf(p *proc.Process) PageTable {
	c := p.Clone()
	return PageTable{PID: c.ID, Size: c.Size, Pages: c.Pages(), Frames: c.PageTable}
}

// Processes lists every process in creation order.
func (s *Simulator) Processes() []ProcessInfo {
	all := s.reg.All()
	out := make([]ProcessInfo, len(all))
	for i, p := range all {
		out[i] = ProcessInfo{PID: p.ID, Size: p.Size, Pages: p.Pages()}
	}
	return out
}

// Snapshot captures configuration, memory status and all page tables.
func (s *Simulator) Snapshot() Snapshot {
	all := s.reg.All()
	tables := make([]PageTable, len(all))
	for i, p := range all {
		tables[i] = pageTableOf(p)
	}
	return Snapshot{
		Session:    s.Session(),
		Config:     s.cfg,
		Memory:     s.MemoryStatus(),
		PageTables: tables,
	}
}

// Flush writes modified frames through to the backing file, if any.
func (s *Simulator) Flush(ctx context.Context) error {
	return s.mem.Flush(ctx)
}

// Close flushes and releases physical memory.
func (s *Simulator) Close() error {
	flushErr := s.mem.Flush(context.Background())
	closeErr := s.mem.Close()
	s.log.Info("simulation closed", "processes", s.reg.Len(), "free_frames", s.mem.FreeFrames())
	return errors.Join(flushErr, closeErr)
}
