package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/capwire/wire"
)

var helpStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#666666"))

type interactiveModel struct {
	filename string
	content  string
	view     viewport.Model
	ready    bool
}

func runInteractive(filename string, r *wire.Reader) error {
	m := interactiveModel{
		filename: filename,
		content:  renderMessage(filename, r),
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m interactiveModel) Init() tea.Cmd {
	return nil
}

func (m interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		headerHeight := 1
		footerHeight := 1
		if !m.ready {
			m.view = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.view.SetContent(m.content)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = msg.Height - headerHeight - footerHeight
		}
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m interactiveModel) View() string {
	if !m.ready {
		return "loading..."
	}
	header := headerStyle.Render(m.filename)
	footer := helpStyle.Render(fmt.Sprintf("%3.0f%%  ↑/↓ scroll · q quit", m.view.ScrollPercent()*100))
	return header + "\n" + m.view.View() + "\n" + footer
}
