package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/pagesim/pkg/pagesim"
)

// createForm is the create-process modal. It is drawn as the overlay
// foreground, so it implements tea.Model.
type createForm struct {
	inputs  []textinput.Model
	focused int
	maxSize int
	errMsg  string
}

const (
	pidField = iota
	sizeField
)

func newCreateForm(maxSize int) *createForm {
	pid := textinput.New()
	pid.Prompt = "Process ID:   "
	pid.Placeholder = "integer"
	pid.CharLimit = 10

	size := textinput.New()
	size.Prompt = "Size (bytes): "
	size.Placeholder = fmt.Sprintf("power of 2, max %d", maxSize)
	size.CharLimit = 10

	f := &createForm{inputs: []textinput.Model{pid, size}, maxSize: maxSize}
	f.inputs[pidField].Focus()
	return f
}

func (f *createForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards msg to the focused input.
func (f *createForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return f, cmd
}

// next moves focus to the other field.
func (f *createForm) next() tea.Cmd {
	f.inputs[f.focused].Blur()
	f.focused = (f.focused + 1) % len(f.inputs)
	return f.inputs[f.focused].Focus()
}

// values parses both fields. problem is non-empty when either is not an
// integer.
func (f *createForm) values() (pid, size int, problem string) {
	pid, err := strconv.Atoi(strings.TrimSpace(f.inputs[pidField].Value()))
	if err != nil {
		return 0, 0, "Process ID must be an integer"
	}
	size, err = strconv.Atoi(strings.TrimSpace(f.inputs[sizeField].Value()))
	if err != nil {
		return 0, 0, "Process size must be an integer"
	}
	return pid, size, ""
}

func (f *createForm) View() string {
	var b strings.Builder
	b.WriteString(modalTitleStyle.Render("Create Process"))
	b.WriteString("\n")
	for i := range f.inputs {
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(f.errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpDescStyle.Render("tab switch field • enter create • esc cancel"))
	return modalStyle.Render(b.String())
}

// createErrorText turns a CreateProcess error into a modal message.
func createErrorText(err error, maxSize int) string {
	switch {
	case errors.Is(err, pagesim.ErrDuplicateID):
		return "Process ID must be unique"
	case errors.Is(err, pagesim.ErrInsufficientFrames):
		return "Insufficient physical memory to allocate the process"
	case errors.Is(err, pagesim.ErrInvalidSize):
		return fmt.Sprintf("Size must be a power of 2, at most %d bytes", maxSize)
	}
	return err.Error()
}
