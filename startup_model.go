package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type startupPhase uint8

const (
	phaseResolving startupPhase = iota
	phaseFailed
)

// openFunc builds the chart model. It reports each host it starts
// resolving on status.
type openFunc func(status chan<- string) (tea.Model, error)

type startupResolvedMsg struct {
	model tea.Model
	err   error
}

type startupStatusMsg string

type startupModel struct {
	hosts    []string
	open     openFunc
	phase    startupPhase
	err      error
	current  string
	width    int
	height   int
	spinner  spinner.Model
	statusCh chan string
}

func newStartupModel(hosts []string, open openFunc) startupModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	return startupModel{
		hosts:    hosts,
		open:     open,
		phase:    phaseResolving,
		spinner:  s,
		statusCh: make(chan string, len(hosts)+1),
	}
}

func (m startupModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForStatus(), openCmd(m.open, m.statusCh))
}

func (m startupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseResolving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case startupStatusMsg:
		m.current = string(msg)
		return m, m.waitForStatus()

	case startupResolvedMsg:
		if msg.err != nil {
			m.phase = phaseFailed
			m.err = msg.err
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}

		cmds := []tea.Cmd{msg.model.Init()}
		if m.width > 0 || m.height > 0 {
			w, h := m.width, m.height
			cmds = append(cmds, func() tea.Msg {
				return tea.WindowSizeMsg{Width: w, Height: h}
			})
		}
		return msg.model, tea.Batch(cmds...)

	case tea.KeyMsg:
		if startupIsQuit(msg) {
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
	}
	return m, nil
}

func (m startupModel) waitForStatus() tea.Cmd {
	if m.statusCh == nil {
		return nil
	}
	statusCh := m.statusCh
	return func() tea.Msg {
		host, ok := <-statusCh
		if !ok {
			return nil
		}
		return startupStatusMsg(host)
	}
}

func (m startupModel) View() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(startupHeaderStyle.Render("pingtrace"))
	b.WriteString("\n\n  ")

	if m.phase == phaseFailed {
		b.WriteString(startupErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	label := fmt.Sprintf("Resolving %d hosts...", len(m.hosts))
	if m.current != "" {
		label = "Resolving " + m.current + "..."
	}
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(startupStatusStyle.Render(label))
	b.WriteString("\n\n  ")
	b.WriteString(startupHelpStyle.Render("q quit"))
	b.WriteString("\n")
	return b.String()
}

func openCmd(open openFunc, statusCh chan string) tea.Cmd {
	return func() tea.Msg {
		defer close(statusCh)
		model, err := open(statusCh)
		return startupResolvedMsg{model: model, err: err}
	}
}

func startupIsQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

var (
	startupHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})
	startupStatusStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})
	startupHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})
	startupErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#A00000", Dark: "#FF8080"})
)
