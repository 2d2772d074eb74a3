// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-jukebox/internal/apperr"
	"github.com/hazadus/go-jukebox/internal/tui/app"
)

// App представляет основное TUI приложение
type App struct {
	model   *app.MainModel
	options []tea.ProgramOption
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(model *app.MainModel, options ...tea.ProgramOption) *App {
	return &App{
		model:   model,
		options: options,
	}
}

// Run запускает сессию и блокируется до выхода пользователя
func (tuiApp *App) Run() error {
	options := append([]tea.ProgramOption{tea.WithAltScreen()}, tuiApp.options...)
	p := tea.NewProgram(tuiApp.model, options...)

	_, err := p.Run()

	// Закрываем плеер после завершения программы
	tuiApp.model.Close()

	if err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrTerminalSetup, err)
	}
	return nil
}
