// Package printer renders simulator state for humans (text) and tools (JSON).
package printer

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/pagesim/pkg/pagesim"
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs the human-readable tables.
	FormatText Format = "text"

	// FormatJSON outputs indented JSON.
	FormatJSON Format = "json"
)


// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// ShowOwners appends the owning pid to occupied frames (text format only).
	// Default: true
	ShowOwners bool

	// GroupDigits prints byte counts with thousands separators (text format only).
	// Default: true
	GroupDigits bool

	// MaxDumpBytes limits hex dumps. Set to 0 for no limit.
	// Default: 0
	MaxDumpBytes int
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:      FormatText,
		ShowOwners:  true,
		GroupDigits: true,
	}
}

// Source is the read-only simulator surface the printer needs.
// *pagesim.Simulator implements it.
type Source interface {
	MemoryStatus() pagesim.MemoryStatus
	PageTableOf(pid pagesim.PID) (pagesim.PageTable, error)
	Processes() []pagesim.ProcessInfo
	Dump(pid pagesim.PID) ([]byte, error)
	Snapshot() pagesim.Snapshot
}

var _ Source = (*pagesim.Simulator)(nil)

// Printer handles formatted output of simulator state.
type Printer struct {
	opts   Options
	writer io.Writer
	src    Source
	num    *message.Printer
}

// New creates a new Printer.
//
// Example:
//
//	sim, _ := pagesim.Initialize(1024, 256, 512)
//	p := printer.New(sim, os.Stdout, printer.DefaultOptions())
//	p.PrintStatus()
func New(src Source, w io.Writer, opts Options) *Printer {
	return &Printer{
		opts:   opts,
		writer: w,
		src:    src,
		num:    message.NewPrinter(language.English),
	}
}

// PrintStatus prints memory geometry, free frames and every frame's state.
func (p *Printer) PrintStatus() error {
	st := p.src.MemoryStatus()
	if p.opts.Format == FormatJSON {
		return p.writeJSON(st)
	}
	return p.printStatusText(st)
}

// PrintPageTable prints the page table of pid.
func (p *Printer) PrintPageTable(pid pagesim.PID) error {
	pt, err := p.src.PageTableOf(pid)
	if err != nil {
		return fmt.Errorf("page table of %d: %w", pid, err)
	}
	if p.opts.Format == FormatJSON {
		return p.writeJSON(pt)
	}
	return p.printPageTableText(pt)
}

// PrintProcesses prints every process in creation order.
func (p *Printer) PrintProcesses() error {
	procs := p.src.Processes()
	if p.opts.Format == FormatJSON {
		return p.writeJSON(procs)
	}
	return p.printProcessesText(procs)
}

// PrintDump prints the logical contents of pid.
func (p *Printer) PrintDump(pid pagesim.PID) error {
	data, err := p.src.Dump(pid)
	if err != nil {
		return fmt.Errorf("dump of %d: %w", pid, err)
	}
	if p.opts.MaxDumpBytes > 0 && len(data) > p.opts.MaxDumpBytes {
		data = data[:p.opts.MaxDumpBytes]
	}
	if p.opts.Format == FormatJSON {
		return p.writeJSON(jsonDump{PID: pid, Bytes: len(data), Data: data})
	}
	return p.printDumpText(pid, data)
}

// PrintSnapshot prints the whole simulation.
func (p *Printer) PrintSnapshot() error {
	snap := p.src.Snapshot()
	if p.opts.Format == FormatJSON {
		return p.writeJSON(snap)
	}
	if err := p.printStatusText(snap.Memory); err != nil {
		return err
	}
	for _, pt := range snap.PageTables {
		if err := p.printPageTableText(pt); err != nil {
			return err
		}
	}
	return nil
}

// bytesString formats n with thousands separators when GroupDigits is set.
func (p *Printer) bytesString(n int) string {
	if p.opts.GroupDigits {
		return p.num.Sprintf("%d", n)
	}
	return fmt.Sprintf("%d", n)
}
