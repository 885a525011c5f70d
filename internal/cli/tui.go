package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	perrors "github.com/matzehuels/polycalc/pkg/errors"
	"github.com/matzehuels/polycalc/pkg/pipeline"
)

// TUI styles
var (
	tuiInputStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	tuiOutputStyle = lipgloss.NewStyle().Foreground(colorGreen).PaddingLeft(2)
	tuiErrorStyle  = lipgloss.NewStyle().Foreground(colorRed).PaddingLeft(2)
	tuiHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// runTUI runs the full-screen REPL until the user quits or ctx is cancelled.
func (c *CLI) runTUI(ctx context.Context) error {
	runner, err := c.newRunner()
	if err != nil {
		return err
	}

	p := tea.NewProgram(newReplModel(ctx, runner), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// =============================================================================
// replModel - Interactive calculator
// =============================================================================

// entry is one answered line in the scrollback.
type entry struct {
	input  string
	output string
	failed bool
}

// replModel is the bubbletea model behind `polycalc repl --tui`.
type replModel struct {
	ctx    context.Context
	runner *pipeline.Runner

	input   textinput.Model
	entries []entry

	// history holds submitted lines, oldest first. histPos == len(history)
	// means the user is editing a fresh line.
	history []string
	histPos int

	height int
}

func newReplModel(ctx context.Context, runner *pipeline.Runner) replModel {
	in := textinput.New()
	in.Prompt = stylePrompt.Render(prompt) + " "
	in.Placeholder = "x^2 + 3x + 2"
	in.CharLimit = perrors.MaxExpressionLength
	in.Focus()

	return replModel{
		ctx:    ctx,
		runner: runner,
		input:  in,
		height: 20,
	}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "ctrl+d":
			return m, tea.Quit
		case "enter":
			return m.submit()
		case "up":
			if m.histPos > 0 {
				m.histPos--
				m.input.SetValue(m.history[m.histPos])
				m.input.CursorEnd()
			}
			return m, nil
		case "down":
			if m.histPos < len(m.history) {
				m.histPos++
				if m.histPos == len(m.history) {
					m.input.SetValue("")
				} else {
					m.input.SetValue(m.history[m.histPos])
				}
				m.input.CursorEnd()
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.input.Width = msg.Width - 4
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the current line and appends the answer to the scrollback.
func (m replModel) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if line == "" {
		return m, nil
	}

	m.history = append(m.history, line)
	m.histPos = len(m.history)

	switch strings.ToLower(line) {
	case "quit", "exit":
		return m, tea.Quit
	case "help", "?":
		m.entries = append(m.entries, entry{input: line, output: strings.Join(helpText, "\n")})
		return m, nil
	}

	res, err := m.runner.Run(m.ctx, line)
	if err != nil {
		msg := perrors.UserMessage(err)
		if code := perrors.GetCode(err); code != "" {
			msg = string(code) + ": " + msg
		}
		m.entries = append(m.entries, entry{input: line, output: msg, failed: true})
		return m, nil
	}
	m.entries = append(m.entries, entry{input: line, output: res.Output})
	return m, nil
}

func (m replModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName))
	b.WriteString("\n\n")

	// Each entry takes at least two lines; keep the newest that fit.
	visible := m.entries
	if limit := (m.height - 6) / 2; limit > 0 && len(visible) > limit {
		visible = visible[len(visible)-limit:]
	}
	for _, e := range visible {
		b.WriteString(tuiInputStyle.Render(stylePrompt.Render(prompt) + " " + e.input))
		b.WriteString("\n")
		if e.failed {
			b.WriteString(tuiErrorStyle.Render(iconError + " " + e.output))
		} else {
			b.WriteString(tuiOutputStyle.Render(e.output))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(tuiHelpStyle.Render("enter: run  ↑/↓: history  esc: quit"))

	return b.String()
}
