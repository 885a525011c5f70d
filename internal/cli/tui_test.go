package cli

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeLine(t *testing.T, m replModel, line string) (replModel, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := next.(replModel)
	require.True(t, ok)
	return rm, cmd
}

func key(t *testing.T, m replModel, k tea.KeyType) (replModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(replModel), cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestReplModelSubmit(t *testing.T) {
	m := newReplModel(context.Background(), newTestRunner(t))

	m, _ = typeLine(t, m, "derive x^3")
	m, _ = typeLine(t, m, "x^")
	m, _ = typeLine(t, m, "   ")

	require.Len(t, m.entries, 2)
	assert.Equal(t, entry{input: "derive x^3", output: "3x^2"}, m.entries[0])
	assert.True(t, m.entries[1].failed)
	assert.Contains(t, m.entries[1].output, "PARSE_ERROR: ")
	assert.Empty(t, m.input.Value())

	view := m.View()
	assert.Contains(t, view, "derive x^3")
	assert.Contains(t, view, "3x^2")
}

func TestReplModelHelp(t *testing.T) {
	m := newReplModel(context.Background(), newTestRunner(t))
	m, _ = typeLine(t, m, "help")
	require.Len(t, m.entries, 1)
	assert.Contains(t, m.entries[0].output, "show this message")
}

func TestReplModelHistory(t *testing.T) {
	m := newReplModel(context.Background(), newTestRunner(t))
	m, _ = typeLine(t, m, "derive x")
	m, _ = typeLine(t, m, "int 1")

	m, _ = key(t, m, tea.KeyUp)
	assert.Equal(t, "int 1", m.input.Value())
	m, _ = key(t, m, tea.KeyUp)
	assert.Equal(t, "derive x", m.input.Value())
	m, _ = key(t, m, tea.KeyUp)
	assert.Equal(t, "derive x", m.input.Value(), "stays on the oldest entry")

	m, _ = key(t, m, tea.KeyDown)
	assert.Equal(t, "int 1", m.input.Value())
	m, _ = key(t, m, tea.KeyDown)
	assert.Empty(t, m.input.Value())
}

func TestReplModelQuit(t *testing.T) {
	m := newReplModel(context.Background(), newTestRunner(t))

	_, cmd := typeLine(t, m, "quit")
	assert.True(t, isQuit(cmd))

	_, cmd = key(t, m, tea.KeyEsc)
	assert.True(t, isQuit(cmd))

	_, cmd = key(t, m, tea.KeyCtrlC)
	assert.True(t, isQuit(cmd))

	_, cmd = typeLine(t, m, "derive x")
	assert.False(t, isQuit(cmd))
}

func TestReplModelWindowSize(t *testing.T) {
	m := newReplModel(context.Background(), newTestRunner(t))
	for i := 0; i < 10; i++ {
		m, _ = typeLine(t, m, "derive x^2")
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	m = next.(replModel)
	assert.Equal(t, 10, m.height)
	assert.Equal(t, 76, m.input.Width)
	assert.Len(t, m.entries, 10)
}
