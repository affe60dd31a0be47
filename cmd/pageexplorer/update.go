package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/pagesim/internal/logger"
)

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// If help is showing, only its dismiss keys apply
		if m.showHelp {
			if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
				m.showHelp = false
			}
			return m, nil
		}

		if m.form != nil {
			return m.updateForm(msg)
		}

		return m.handleKey(msg)
	}

	// Forward cursor blinks to the open form
	if m.form != nil {
		_, cmd := m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Create):
		m.form = newCreateForm(m.sim.MaxProcessSize())
		m.statusMessage = ""
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Copy):
		m.copyPageTable()

	case key.Matches(msg, m.keys.Tab):
		if m.focusedPane == ProcessPane {
			m.focusedPane = FramePane
		} else {
			m.focusedPane = ProcessPane
		}

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, -m.gridColumns())
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, m.gridColumns())
	case key.Matches(msg, m.keys.Left):
		if m.focusedPane == FramePane {
			m.moveCursor(0, -1)
		}
	case key.Matches(msg, m.keys.Right):
		if m.focusedPane == FramePane {
			m.moveCursor(0, 1)
		}
	case key.Matches(msg, m.keys.Home):
		cfg := m.sim.Config()
		m.moveCursor(-m.sim.ProcessCount(), -cfg.Frames())
	case key.Matches(msg, m.keys.End):
		cfg := m.sim.Config()
		m.moveCursor(m.sim.ProcessCount(), cfg.Frames())
	}
	return m, nil
}

// moveCursor moves the cursor of the focused pane by procDelta or
// frameDelta, clamping to the pane's bounds.
func (m *Model) moveCursor(procDelta, frameDelta int) {
	if m.focusedPane == ProcessPane {
		m.procCursor = clamp(m.procCursor+procDelta, 0, m.sim.ProcessCount()-1)
		return
	}
	cfg := m.sim.Config()
	m.frameCursor = clamp(m.frameCursor+frameDelta, 0, cfg.Frames()-1)
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Esc):
		m.form = nil
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		return m, m.form.next()

	case key.Matches(msg, m.keys.Enter):
		m.submitForm()
		return m, nil
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

// submitForm creates the process described by the form. The form stays
// open with an error message when creation is rejected.
func (m *Model) submitForm() {
	pid, size, problem := m.form.values()
	if problem != "" {
		m.form.errMsg = problem
		return
	}

	info, err := m.sim.CreateProcess(pid, size)
	if err != nil {
		logger.Debug("create from modal rejected", "pid", pid, "size", size, "error", err)
		m.form.errMsg = createErrorText(err, m.form.maxSize)
		return
	}

	m.form = nil
	m.procCursor = m.sim.ProcessCount() - 1
	m.focusedPane = ProcessPane
	m.statusMessage = fmt.Sprintf("Created process %d: %d bytes in %d pages", info.PID, info.Size, info.Pages)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
