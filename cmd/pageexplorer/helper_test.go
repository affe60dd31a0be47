package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pagesim/pkg/pagesim"
)

// TestHelper drives a Model with synthetic key messages.
type TestHelper struct {
	t       *testing.T
	model   Model
	lastCmd tea.Cmd
}

// NewTestHelper creates a model over a 1024-byte memory with 256-byte pages.
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()
	sim, err := pagesim.Initialize(1024, 256, 512)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sim.Close() })
	return &TestHelper{t: t, model: NewModel(sim)}
}

func (h *TestHelper) send(msg tea.Msg) *TestHelper {
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	h.lastCmd = cmd
	return h
}

// SendKey simulates a special key press
func (h *TestHelper) SendKey(keyType tea.KeyType) *TestHelper {
	return h.send(tea.KeyMsg{Type: keyType})
}

// SendKeyRune simulates a character key press
func (h *TestHelper) SendKeyRune(r rune) *TestHelper {
	return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Type sends each rune of s
func (h *TestHelper) Type(s string) *TestHelper {
	for _, r := range s {
		h.SendKeyRune(r)
	}
	return h
}

// SendWindowSize simulates a window resize
func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	return h.send(tea.WindowSizeMsg{Width: width, Height: height})
}

// CreateProcess fills in and submits the create modal
func (h *TestHelper) CreateProcess(pid, size string) *TestHelper {
	h.SendKeyRune('n')
	h.Type(pid)
	h.SendKey(tea.KeyTab)
	h.Type(size)
	return h.SendKey(tea.KeyEnter)
}

// GetModel returns the current model
func (h *TestHelper) GetModel() Model {
	return h.model
}
