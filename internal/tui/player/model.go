// Package player содержит панель с информацией о воспроизведении для TUI
package player

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-jukebox/internal/data"
	"github.com/hazadus/go-jukebox/internal/player"
	"github.com/hazadus/go-jukebox/internal/utils"
)

// Title заголовок панели
const Title = "Player Info"

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	trackInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	statusStyle = lipgloss.NewStyle().
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff0000")).
			Bold(true).
			MarginTop(1)
)

// Model отображает текущий трек, паузу, прогресс и строку статуса
type Model struct {
	progressBar progress.Model
	width       int
	height      int
}

// NewModel создает новую панель плеера
func NewModel() *Model {
	prog := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	prog.Width = 40

	return &Model{
		progressBar: prog,
	}
}

// SetSize задает внешние размеры панели вместе с рамкой
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	// Прогресс-бар помещается внутрь рамки
	m.progressBar.Width = max(10, min(60, width-4))
}

// View отображает панель. Прогресс показывается, только если бэкенд его сообщил.
func (m *Model) View(state *data.AppState, status player.Status, hasStatus bool) string {
	textWidth := 0
	if m.width > 0 {
		textWidth = m.width - 2
	}

	lines := []string{
		titleStyle.Render(Title),
		m.fit("Song: " + state.NowPlaying, textWidth),
		fmt.Sprintf("Paused: %t", state.Paused),
	}

	if hasStatus {
		var percent float64
		if status.Total > 0 {
			percent = float64(status.Current) / float64(status.Total)
		}
		lines = append(lines,
			"",
			m.progressBar.ViewAs(percent),
			trackInfoStyle.Render(utils.FormatProgress(status.Current, status.Total)),
		)
	}

	if state.Status != "" {
		if state.StatusIsError {
			lines = append(lines, errorStyle.Render(m.fit(state.Status, textWidth)))
		} else {
			lines = append(lines, statusStyle.Render(m.fit(state.Status, textWidth)))
		}
	}

	style := paneStyle
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}
	if m.height > 2 {
		style = style.Height(m.height - 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m *Model) fit(s string, width int) string {
	if width <= 0 {
		return s
	}
	return utils.TruncateString(s, width)
}
