package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-jukebox/internal/apperr"
	"github.com/hazadus/go-jukebox/internal/data"
	"github.com/hazadus/go-jukebox/internal/player"
	"github.com/hazadus/go-jukebox/internal/track"
	"github.com/hazadus/go-jukebox/internal/tui"
	tuiapp "github.com/hazadus/go-jukebox/internal/tui/app"
)

// runSession запускает интерактивную сессию
func (app *Application) runSession(ctx context.Context) error {
	if !app.isTerminal(int(os.Stdin.Fd())) || !app.isTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("%w: stdin и stdout должны быть терминалом", apperr.ErrTerminalSetup)
	}

	closeLog, err := app.setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := app.Config
	state := data.NewAppState(cfg.MusicDir)
	lister := track.NewDirLister(cfg.Extensions)

	// Без звука сессия продолжает работать: навигация и сканирование доступны
	var backend player.Backend
	if p, err := player.NewPlayer(cfg.SampleRate); err != nil {
		log.Printf("аудио недоступно: %v", err)
	} else {
		backend = p
	}

	model := tuiapp.NewMainModel(state, backend, lister, tuiapp.Options{
		TickRate:        cfg.TickRate,
		RescanDelay:     cfg.RescanDelay,
		RescanInterval:  cfg.RescanInterval,
		DormantInterval: cfg.DormantInterval,
		WatchDebounce:   cfg.WatchDebounce,
	})

	if cfg.WatchDir {
		watcher, err := track.NewWatcher(cfg.MusicDir)
		if err != nil {
			log.Printf("наблюдение за каталогом отключено: %v", err)
		} else {
			defer watcher.Close()
			model.WatchChanges(watcher.Changes())
		}
	}

	log.Printf("сессия запущена: %s", cfg.MusicDir)
	return tui.NewApp(model, tea.WithContext(ctx)).Run()
}

// setupLogging направляет лог в файл, пока терминал занят интерфейсом
func (app *Application) setupLogging() (func(), error) {
	if app.Config.LogFile == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := tea.LogToFile(app.Config.LogFile, "jukebox")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия лог-файла %s: %w", app.Config.LogFile, err)
	}
	return func() { f.Close() }, nil
}
