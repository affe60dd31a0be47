package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/joshuapare/pagesim/pkg/pagesim"
)

// View renders the entire UI
func (m Model) View() string {
	// Modals are composited over the main view
	var fg tea.Model
	switch {
	case m.showHelp:
		fg = staticView(m.renderHelp())
	case m.form != nil:
		fg = m.form
	}
	if fg != nil {
		return overlay.New(
			fg,
			NewMainViewModel(&m),
			overlay.Center,
			overlay.Center,
			0,
			0,
		).View()
	}

	return m.renderMain()
}

// renderMain renders the panes, padded to the window so modals can be
// centered over it.
func (m Model) renderMain() string {
	body := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderContent(),
		m.renderStatus(),
	)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, body)
	}
	return body
}

// renderHeader renders the title and memory geometry
func (m Model) renderHeader() string {
	cfg := m.sim.Config()
	geometry := fmt.Sprintf("%d bytes • %d-byte pages • %d frames • max process %d bytes",
		cfg.MemorySize, cfg.PageSize, cfg.Frames(), cfg.MaxProcessSize)
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		headerStyle.Render("Paging Simulator"),
		" ",
		geometryStyle.Render(geometry),
	)
}

// renderContent renders the frame grid beside the process and page table panes
func (m Model) renderContent() string {
	st := m.sim.MemoryStatus()

	var selected pagesim.PageTable
	pi, ok := m.selectedProcess()
	if ok {
		selected, _ = m.sim.PageTableOf(pi.PID)
	}

	framePane := paneStyle
	procPane := paneStyle
	if m.focusedPane == FramePane {
		framePane = activePaneStyle
	} else {
		procPane = activePaneStyle
	}

	left := framePane.Render(m.renderFrames(st, selected))
	right := lipgloss.JoinVertical(
		lipgloss.Left,
		procPane.Render(m.renderProcesses()),
		paneStyle.Render(m.renderPageTable(selected, ok)),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// renderFrames draws the frame grid. Rows outside the window around the
// frame cursor are skipped when the terminal is short.
func (m Model) renderFrames(st pagesim.MemoryStatus, selected pagesim.PageTable) string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("Physical Frames"))
	b.WriteString("\n")

	inSelected := make(map[int]bool, len(selected.Frames))
	for _, f := range selected.Frames {
		inSelected[f] = true
	}

	cols := m.gridColumns()
	rows := (len(st.FrameState) + cols - 1) / cols
	first, last := 0, rows
	if m.height > 0 {
		visible := m.height - chromeHeight
		if visible < 1 {
			visible = 1
		}
		if rows > visible {
			cursorRow := m.frameCursor / cols
			first = cursorRow - visible/2
			if first < 0 {
				first = 0
			}
			if first+visible > rows {
				first = rows - visible
			}
			last = first + visible
		}
	}

	for r := first; r < last; r++ {
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(st.FrameState) {
				break
			}
			b.WriteString(m.renderFrameCell(st.FrameState[i], inSelected[i]))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	if m.focusedPane == FramePane && m.frameCursor < len(st.FrameState) {
		f := st.FrameState[m.frameCursor]
		if f.Free {
			fmt.Fprintf(&b, "\nFrame %d: Free", f.Index)
		} else {
			fmt.Fprintf(&b, "\nFrame %d: Occupied (PID %d)", f.Index, f.Owner)
		}
	}
	return b.String()
}

func (m Model) renderFrameCell(f pagesim.FrameState, selected bool) string {
	label := fmt.Sprintf("%4d", f.Index)
	style := freeFrameStyle
	if !f.Free {
		style = ownerStyle(f.Owner)
		if selected {
			style = style.Underline(true)
		}
	}
	if m.focusedPane == FramePane && f.Index == m.frameCursor {
		style = style.Inherit(cursorFrameStyle)
	}
	return style.Render(label)
}

func (m Model) renderProcesses() string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("Processes"))
	b.WriteString("\n")

	procs := m.sim.Processes()
	if len(procs) == 0 {
		b.WriteString(freeFrameStyle.Render("No processes. Press n to create one."))
		return b.String()
	}

	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("%-8s %10s %6s", "PID", "Size", "Pages")))
	b.WriteString("\n")
	for i, pi := range procs {
		row := fmt.Sprintf("%-8d %10d %6d", pi.PID, pi.Size, pi.Pages)
		if i == m.procCursor {
			row = tableSelectedStyle.Render(row)
		} else {
			row = ownerStyle(pi.PID).Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderPageTable(pt pagesim.PageTable, ok bool) string {
	var b strings.Builder
	if !ok {
		b.WriteString(paneTitleStyle.Render("Page Table"))
		return b.String()
	}
	b.WriteString(paneTitleStyle.Render(fmt.Sprintf("Page Table for Process ID %d", pt.PID)))
	b.WriteString("\n")
	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("%-6s %6s", "Page", "Frame")))
	b.WriteString("\n")
	for page, f := range pt.Frames {
		fmt.Fprintf(&b, "%-6d %6d\n", page, f)
	}
	return b.String()
}

// renderStatus renders the bottom status bar
func (m Model) renderStatus() string {
	st := m.sim.MemoryStatus()
	counts := statusCountStyle.Render(fmt.Sprintf("Free Frames: %d/%d (%.2f%%)", st.FreeFrames, st.Frames, st.FreePercent()))
	line := counts + "  " + fmt.Sprintf("Processes: %d", m.sim.ProcessCount())
	if m.statusMessage != "" {
		line += "  " + successStyle.Render(m.statusMessage)
	}
	line += "  ? help • q quit"
	if m.width > 0 {
		return statusStyle.Width(m.width).Render(line)
	}
	return statusStyle.Render(line)
}

// renderHelp renders the help overlay content
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(modalTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	bindings := []struct{ keys, desc string }{
		{"↑/↓ or k/j", "Move in the focused pane"},
		{"←/→ or h/l", "Move between frames"},
		{"Home/End", "Jump to first/last"},
		{"Tab", "Switch processes/frames"},
		{"n", "Create a process"},
		{"y", "Copy selected page table"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}
	for _, kb := range bindings {
		b.WriteString(helpKeyStyle.Render(kb.keys))
		b.WriteString("  ")
		b.WriteString(helpDescStyle.Render(kb.desc))
		b.WriteString("\n")
	}
	return modalStyle.Render(b.String())
}

// staticView adapts pre-rendered content to tea.Model for the overlay.
type staticView string

func (v staticView) Init() tea.Cmd                       { return nil }
func (v staticView) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }
func (v staticView) View() string                        { return string(v) }
