package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	phaseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type progressMsg string

type progressModel struct {
	spinner spinner.Model
	phase   string
}

func newProgressModel() progressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = phaseStyle
	return progressModel{spinner: sp, phase: "Starting"}
}

func (m progressModel) Init() tea.Cmd { return m.spinner.Tick }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.phase = string(msg)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m progressModel) View() string {
	return fmt.Sprintf("%s %s\n", m.spinner.View(), dimStyle.Render(m.phase))
}

// progressProgram drives a bubbletea program from the builder's
// onProgress callback, rendering a spinner over the current phase
// message. It degrades to plain stderr lines when stderr is not a
// terminal.
type progressProgram struct {
	program *tea.Program
	done    chan struct{}
}

func newProgressProgram() *progressProgram {
	if !isTerminal() {
		return &progressProgram{}
	}
	p := tea.NewProgram(newProgressModel(), tea.WithOutput(os.Stderr))
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Run()
	}()
	return &progressProgram{program: p, done: done}
}

func (p *progressProgram) update(message string) {
	if p.program != nil {
		p.program.Send(progressMsg(message))
		return
	}
	fmt.Fprintln(os.Stderr, message)
}

func (p *progressProgram) stop() {
	if p.program == nil {
		return
	}
	p.program.Quit()
	<-p.done
	p.program = nil
}

func isTerminal() bool {
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
