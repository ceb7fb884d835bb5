package ui

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MihkelHunter/kif/internal/command"
)

// transcriptLimit bounds how many exchanges the TUI keeps on screen.
const transcriptLimit = 12

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	replyStyle  = lipgloss.NewStyle().PaddingLeft(2)
	errorStyle  = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("203"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// RunTUI starts the full-screen front end. It needs a terminal on stdout.
func RunTUI(ctx context.Context, e *command.Engine) error {
	if !IsTTY(os.Stdout) {
		return errors.New("tui requires a TTY")
	}
	program := tea.NewProgram(newTUIModel(e), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type exchange struct {
	input string
	reply command.Reply
}

type tuiModel struct {
	engine  *command.Engine
	input   textinput.Model
	history []exchange
	done    bool
}

func newTUIModel(e *command.Engine) *tuiModel {
	ti := textinput.New()
	ti.Placeholder = "todo Buy milk"
	ti.Prompt = "> "
	ti.CharLimit = 512
	ti.Focus()
	return &tuiModel{engine: e, input: ti}
}

func (m *tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.submit()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tuiModel) submit() tea.Cmd {
	line := m.input.Value()
	m.input.Reset()
	if strings.TrimSpace(line) == "" {
		return nil
	}
	reply := m.engine.Handle(line)
	m.history = append(m.history, exchange{input: line, reply: reply})
	if len(m.history) > transcriptLimit {
		m.history = m.history[len(m.history)-transcriptLimit:]
	}
	if reply.Exit {
		m.done = true
		return tea.Quit
	}
	return nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("kif"))
	b.WriteString("\n\n")
	if len(m.history) == 0 {
		b.WriteString(replyStyle.Render(command.Greeting()))
		b.WriteString("\n\n")
	}
	for _, ex := range m.history {
		b.WriteString(promptStyle.Render("> " + ex.input))
		b.WriteByte('\n')
		style := replyStyle
		if ex.reply.Failed() {
			style = errorStyle
		}
		b.WriteString(style.Render(ex.reply.Text))
		b.WriteString("\n\n")
	}
	if m.done {
		return b.String()
	}
	b.WriteString(m.input.View())
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("enter: run  esc: quit"))
	b.WriteByte('\n')
	return b.String()
}
