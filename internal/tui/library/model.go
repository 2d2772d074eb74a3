// Package library содержит панель со списком треков для TUI
package library

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-jukebox/internal/selection"
	"github.com/hazadus/go-jukebox/internal/utils"
)

// Title заголовок панели
const Title = "Songs"

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	itemStyle = lipgloss.NewStyle().PaddingLeft(2)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("120")).
				Bold(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			PaddingLeft(2)
)

// Model хранит размеры панели и смещение прокрутки
type Model struct {
	width  int
	height int
	offset int
}

// NewModel создает новую панель списка треков
func NewModel() *Model {
	return &Model{}
}

// SetSize задает внешние размеры панели вместе с рамкой
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Offset возвращает индекс первой видимой строки
func (m *Model) Offset() int {
	return m.offset
}

// visibleRows количество строк под записи: без рамки и заголовка
func (m *Model) visibleRows() int {
	if m.height <= 0 {
		return 0
	}
	rows := m.height - 2 - 2
	if rows < 1 {
		rows = 1
	}
	return rows
}

// ensureCursorVisible сдвигает окно так, чтобы курсор оставался на экране
func (m *Model) ensureCursorVisible(cursor, total, maxVisible int) {
	if total == 0 || maxVisible <= 0 {
		m.offset = 0
		return
	}

	maxOffset := total - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
	if cursor < m.offset {
		m.offset = cursor
	}
	if upper := m.offset + maxVisible - 1; cursor > upper {
		m.offset = cursor - maxVisible + 1
	}
}

// View отображает панель для текущего списка
func (m *Model) View(lib *selection.List[string]) string {
	items := lib.Items()
	cursor, hasCursor := lib.Cursor()

	maxVisible := m.visibleRows()
	if hasCursor {
		m.ensureCursorVisible(cursor, len(items), maxVisible)
	} else {
		m.ensureCursorVisible(0, len(items), maxVisible)
	}

	// Ширина текста без рамки и отступа под маркер
	textWidth := 0
	if m.width > 0 {
		textWidth = m.width - 2 - 2
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(Title))

	if len(items) == 0 {
		b.WriteString("\n")
		b.WriteString(emptyStyle.Render("(пусто)"))
	}

	end := len(items)
	if maxVisible > 0 && m.offset+maxVisible < end {
		end = m.offset + maxVisible
	}
	for i := m.offset; i < end; i++ {
		name := items[i]
		if textWidth > 0 {
			name = utils.TruncateString(name, textWidth)
		}

		b.WriteString("\n")
		if hasCursor && i == cursor {
			b.WriteString(selectedItemStyle.Render("> " + name))
		} else {
			b.WriteString(itemStyle.Render(name))
		}
	}

	style := paneStyle
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}
	if m.height > 2 {
		style = style.Height(m.height - 2)
	}
	return style.Render(b.String())
}
