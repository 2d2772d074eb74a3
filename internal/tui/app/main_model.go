// Package app содержит основную логику TUI приложения
package app

import (
	"errors"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-jukebox/internal/apperr"
	"github.com/hazadus/go-jukebox/internal/data"
	"github.com/hazadus/go-jukebox/internal/metadata"
	"github.com/hazadus/go-jukebox/internal/player"
	"github.com/hazadus/go-jukebox/internal/scheduler"
	"github.com/hazadus/go-jukebox/internal/track"
	"github.com/hazadus/go-jukebox/internal/tui/library"
	tuiPlayer "github.com/hazadus/go-jukebox/internal/tui/player"
)

// Options тайминги цикла сессии
type Options struct {
	TickRate        time.Duration // Максимальное ожидание между опросами планировщика
	RescanDelay     time.Duration
	RescanInterval  time.Duration // 0 - без периодического сканирования
	DormantInterval time.Duration
	WatchDebounce   time.Duration
}

// DefaultOptions возвращает тайминги по умолчанию
func DefaultOptions() Options {
	return Options{
		TickRate:        250 * time.Millisecond,
		RescanDelay:     500 * time.Millisecond,
		DormantInterval: time.Hour,
		WatchDebounce:   300 * time.Millisecond,
	}
}

type tickMsg time.Time

type playbackStartedMsg struct {
	req   data.PlayRequest
	label string
}

type playbackErrorMsg struct {
	req data.PlayRequest
	err error
}

type playbackFinishedMsg struct {
	path string
}

type dirChangedMsg struct{}

// MainModel представляет главную модель TUI: цикл сессии
type MainModel struct {
	state   *data.AppState
	backend player.Backend
	lister  track.Lister
	labeler func(path string) string
	changes <-chan struct{}

	runner *scheduler.Runner
	opts   Options
	now    func() time.Time

	keys    keyMap
	help    help.Model
	library *library.Model
	info    *tuiPlayer.Model

	width    int
	height   int
	quitting bool
}

// NewMainModel создает новую главную модель. backend может быть nil,
// если аудио недоступно: тогда работают только навигация и сканирование.
func NewMainModel(state *data.AppState, backend player.Backend, lister track.Lister, opts Options) *MainModel {
	defaults := DefaultOptions()
	if opts.TickRate <= 0 {
		opts.TickRate = defaults.TickRate
	}
	if opts.DormantInterval <= 0 {
		opts.DormantInterval = defaults.DormantInterval
	}

	if backend == nil {
		state.BackendReady = false
		state.SetError(apperr.ErrBackendUnavailable)
	}

	return &MainModel{
		state:   state,
		backend: backend,
		lister:  lister,
		labeler: metadata.NewExtractor().Label,
		runner:  scheduler.NewRunner(),
		opts:    opts,
		now:     time.Now,
		keys:    defaultKeyMap(),
		help:    help.New(),
		library: library.NewModel(),
		info:    tuiPlayer.NewModel(),
	}
}

// WatchChanges подключает канал сигналов об изменении каталога
func (m *MainModel) WatchChanges(changes <-chan struct{}) {
	m.changes = changes
}

// State возвращает состояние сессии
func (m *MainModel) State() *data.AppState {
	return m.state
}

// Quitting сообщает, завершена ли сессия
func (m *MainModel) Quitting() bool {
	return m.quitting
}

// Init взводит фоновые задачи и запускает первый тик
func (m *MainModel) Init() tea.Cmd {
	now := m.now()
	m.runner.Arm(scheduler.SetupTask, now.Add(m.opts.TickRate), m.opts.DormantInterval)
	m.runner.Arm(scheduler.RescanTask, now.Add(m.opts.RescanDelay), m.rescanInterval())

	return tea.Batch(
		m.scheduleTick(now),
		m.listenFinished(),
		m.listenChanges(),
	)
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		now := time.Time(msg)
		m.runTasks(now)
		return m, m.scheduleTick(now)

	case playbackStartedMsg:
		m.state.PlayStarted(msg.req, msg.label)
		return m, nil

	case playbackErrorMsg:
		log.Printf("ошибка воспроизведения %s: %v", msg.req.Path, msg.err)
		m.state.PlayFailed(msg.req, msg.err)
		return m, nil

	case playbackFinishedMsg:
		m.state.PlaybackFinished(msg.path)
		return m, m.listenFinished()

	case dirChangedMsg:
		// Откладываем сканирование, пока изменения не утихнут
		m.runner.Arm(scheduler.RescanTask, m.now().Add(m.opts.WatchDebounce), m.rescanInterval())
		return m, m.listenChanges()

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	return m, nil
}

func (m *MainModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		// Останавливаем плеер перед выходом
		if m.backend != nil {
			if err := m.backend.Stop(); err != nil {
				log.Printf("ошибка остановки плеера: %v", err)
			}
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		m.navigate(m.state.NavigateDown)

	case key.Matches(msg, m.keys.Up):
		m.navigate(m.state.NavigateUp)

	case key.Matches(msg, m.keys.Play):
		return m, m.play()

	case key.Matches(msg, m.keys.Pause):
		if err := m.state.Pause(m.backend); err != nil {
			log.Printf("пауза: %v", err)
		}

	case key.Matches(msg, m.keys.Unpause):
		if err := m.state.Unpause(m.backend); err != nil {
			log.Printf("возобновление: %v", err)
		}
	}

	return m, nil
}

func (m *MainModel) navigate(move func() error) {
	if err := move(); err != nil && !errors.Is(err, apperr.ErrEmptyList) {
		m.state.SetError(err)
	}
}

// play готовит запрос и запускает трек в отдельной команде
func (m *MainModel) play() tea.Cmd {
	req, err := m.state.PreparePlay()
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidSelection) {
			// Нечего играть
			log.Printf("воспроизведение пропущено: %v", err)
			return nil
		}
		m.state.SetError(err)
		return nil
	}

	backend := m.backend
	labeler := m.labeler
	return func() tea.Msg {
		if err := backend.Play(req.Path); err != nil {
			return playbackErrorMsg{req: req, err: err}
		}
		return playbackStartedMsg{req: req, label: labeler(req.Path)}
	}
}

// runTasks выполняет задачи, срок которых наступил
func (m *MainModel) runTasks(now time.Time) {
	for _, id := range m.runner.Poll(now) {
		switch id {
		case scheduler.SetupTask:
			m.state.Setup()

		case scheduler.RescanTask:
			if err := m.state.Rescan(m.lister); err != nil {
				log.Printf("ошибка сканирования %s: %v", m.state.ScanRoot, err)
			}
		}
	}
}

func (m *MainModel) scheduleTick(now time.Time) tea.Cmd {
	return tea.Tick(m.runner.Timeout(now, m.opts.TickRate), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// listenFinished ждет сигнал о завершении трека
func (m *MainModel) listenFinished() tea.Cmd {
	if m.backend == nil {
		return nil
	}
	finished := m.backend.Finished()
	return func() tea.Msg {
		path, ok := <-finished
		if !ok {
			return nil
		}
		return playbackFinishedMsg{path: path}
	}
}

// listenChanges ждет сигнал от наблюдателя за каталогом
func (m *MainModel) listenChanges() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return dirChangedMsg{}
	}
}

func (m *MainModel) rescanInterval() time.Duration {
	if m.opts.RescanInterval > 0 {
		return m.opts.RescanInterval
	}
	return m.opts.DormantInterval
}

// Close закрывает ресурсы главной модели
func (m *MainModel) Close() {
	if m.backend != nil {
		if err := m.backend.Close(); err != nil {
			log.Printf("ошибка закрытия плеера: %v", err)
		}
	}
}
