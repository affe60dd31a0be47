package printer

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/joshuapare/pagesim/pkg/pagesim"
)

func (p *Printer) printStatusText(st pagesim.MemoryStatus) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n=== Physical Memory Status ===\n")
	fmt.Fprintf(&b, "Total Physical Memory: %s bytes\n", p.bytesString(st.TotalSize))
	fmt.Fprintf(&b, "Page Size: %s bytes\n", p.bytesString(st.PageSize))
	fmt.Fprintf(&b, "Total Number of Frames: %d\n", st.Frames)
	fmt.Fprintf(&b, "Free Frames: %d (%.2f%%)\n", st.FreeFrames, st.FreePercent())

	fmt.Fprintf(&b, "\nFrame Status:\n")
	fmt.Fprintf(&b, "Frame\tStatus\n")
	for _, f := range st.FrameState {
		switch {
		case f.Free:
			fmt.Fprintf(&b, "%d\tFree\n", f.Index)
		case p.opts.ShowOwners:
			fmt.Fprintf(&b, "%d\tOccupied (PID %d)\n", f.Index, f.Owner)
		default:
			fmt.Fprintf(&b, "%d\tOccupied\n", f.Index)
		}
	}
	return p.write(b.String())
}

func (p *Printer) printPageTableText(pt pagesim.PageTable) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\nPage Table for Process ID %d:\n", pt.PID)
	fmt.Fprintf(&b, "Process Size: %s bytes\n", p.bytesString(pt.Size))
	fmt.Fprintf(&b, "Number of Pages: %d\n", pt.Pages)
	fmt.Fprintf(&b, "Page\tFrame\n")
	for page, f := range pt.Frames {
		fmt.Fprintf(&b, "%d\t%d\n", page, f)
	}
	return p.write(b.String())
}

func (p *Printer) printProcessesText(procs []pagesim.ProcessInfo) error {
	if len(procs) == 0 {
		return p.write("\nNo processes available to display.\n")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\nPID\tSize\tPages\n")
	for _, pi := range procs {
		fmt.Fprintf(&b, "%d\t%s\t%d\n", pi.PID, p.bytesString(pi.Size), pi.Pages)
	}
	return p.write(b.String())
}

func (p *Printer) printDumpText(pid pagesim.PID, data []byte) error {
	if _, err := fmt.Fprintf(p.writer, "\n## PID: %d - %s bytes\n", pid, p.bytesString(len(data))); err != nil {
		return err
	}
	d := hex.Dumper(p.writer)
	if _, err := d.Write(data); err != nil {
		return err
	}
	return d.Close()
}

func (p *Printer) write(s string) error {
	_, err := fmt.Fprint(p.writer, s)
	return err
}
