package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-jukebox/internal/player"
)

const (
	layoutMargin = 2
	helpHeight   = 1
)

var (
	appStyle  = lipgloss.NewStyle().Margin(layoutMargin)
	helpStyle = lipgloss.NewStyle().PaddingLeft(layoutMargin)
)

// resize делит экран на две равные панели
func (m *MainModel) resize(width, height int) {
	m.width = width
	m.height = height

	innerWidth := width - 2*layoutMargin
	innerHeight := height - 2*layoutMargin - helpHeight
	if innerWidth < 0 {
		innerWidth = 0
	}
	if innerHeight < 0 {
		innerHeight = 0
	}

	left := innerWidth / 2
	m.library.SetSize(left, innerHeight)
	m.info.SetSize(innerWidth-left, innerHeight)
	m.help.Width = width
}

// View отображает интерфейс: список слева, информация о плеере справа
func (m *MainModel) View() string {
	if m.quitting {
		return ""
	}

	var status player.Status
	var hasStatus bool
	if reporter, ok := m.backend.(player.ProgressReporter); ok && m.state.NowPlayingPath != "" {
		status, hasStatus = reporter.Status()
	}

	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.library.View(m.state.Library),
		m.info.View(m.state, status, hasStatus),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		appStyle.Render(panes),
		helpStyle.Render(m.help.View(m.keys)),
	)
}
