package main

import (
	"bytes"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/pagesim/pkg/pagesim"
	"github.com/joshuapare/pagesim/pkg/printer"
)

// Pane represents which pane is focused
type Pane int

const (
	ProcessPane Pane = iota
	FramePane
)

// Layout constants
const (
	frameCellWidth   = 6  // "  12 " plus separator
	chromeHeight     = 10 // header, pane borders and status bar
	defaultGridWidth = 8  // frames per row before the first WindowSizeMsg
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// Model is the main application model
type Model struct {
	sim  *pagesim.Simulator
	keys KeyMap

	focusedPane Pane
	procCursor  int
	frameCursor int
	width       int
	height      int

	// Help overlay
	showHelp bool

	// Create-process modal; nil when closed
	form *createForm

	// Status message for temporary feedback
	statusMessage string
}

// NewModel creates a new TUI model over sim.
func NewModel(sim *pagesim.Simulator) Model {
	return Model{
		sim:  sim,
		keys: DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Close flushes and releases the simulator.
func (m Model) Close() error {
	return m.sim.Close()
}

// selectedProcess returns the process under the process cursor.
func (m Model) selectedProcess() (pagesim.ProcessInfo, bool) {
	procs := m.sim.Processes()
	if m.procCursor < 0 || m.procCursor >= len(procs) {
		return pagesim.ProcessInfo{}, false
	}
	return procs[m.procCursor], true
}

// gridColumns is the number of frames rendered per grid row.
func (m Model) gridColumns() int {
	if m.width == 0 {
		return defaultGridWidth
	}
	cols := (m.width/2 - 4) / frameCellWidth
	if cols < 1 {
		return 1
	}
	return cols
}

// copyPageTable puts the selected process page table on the clipboard.
func (m *Model) copyPageTable() {
	pi, ok := m.selectedProcess()
	if !ok {
		m.statusMessage = "No process selected"
		return
	}
	var buf bytes.Buffer
	opts := printer.DefaultOptions()
	opts.GroupDigits = false
	if err := printer.New(m.sim, &buf, opts).PrintPageTable(pi.PID); err != nil {
		m.statusMessage = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	if err := writeClipboard(buf.String()); err != nil {
		m.statusMessage = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.statusMessage = fmt.Sprintf("Copied page table of process %d", pi.PID)
}
