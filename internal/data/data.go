// Package data содержит состояние приложения и действия над ним
package data

import (
	"errors"
	"fmt"

	"github.com/hazadus/go-jukebox/internal/apperr"
	"github.com/hazadus/go-jukebox/internal/selection"
	"github.com/hazadus/go-jukebox/internal/track"
)

const (
	// NothingPlaying подпись, когда ничего не играет
	NothingPlaying = "Nothing Playing"
	// ProcessingEntry временная запись до первого сканирования каталога
	ProcessingEntry = "Processing"
)

// Controls команды паузы аудио-бэкенда
type Controls interface {
	Pause() error
	Resume() error
}

// PlayRequest описывает трек, который нужно запустить
type PlayRequest struct {
	Entry string // Имя записи в каталоге
	Path  string // Полный путь к файлу
}

// AppState хранит состояние сессии. Изменяется только из цикла сессии.
type AppState struct {
	Library        *selection.List[string]
	ScanRoot       string
	Paused         bool
	NowPlaying     string
	NowPlayingPath string
	Status         string
	StatusIsError  bool
	Scanned        bool // Каталог прочитан хотя бы раз
	BackendReady   bool

	lastErr error
}

// NewAppState создает состояние с временной записью в списке
func NewAppState(scanRoot string) *AppState {
	return &AppState{
		Library:      selection.WithItems([]string{ProcessingEntry}),
		ScanRoot:     scanRoot,
		NowPlaying:   NothingPlaying,
		BackendReady: true,
	}
}

// NavigateUp перемещает курсор к предыдущему треку
func (s *AppState) NavigateUp() error {
	return s.Library.Retreat()
}

// NavigateDown перемещает курсор к следующему треку
func (s *AppState) NavigateDown() error {
	return s.Library.Advance()
}

// Setup ставит курсор в списке, если его еще нет на месте
func (s *AppState) Setup() {
	if err := s.Library.Advance(); err != nil && !errors.Is(err, apperr.ErrEmptyList) {
		s.setError(err)
	}
}

// PreparePlay определяет файл для выбранной записи, не меняя состояние
func (s *AppState) PreparePlay() (PlayRequest, error) {
	if !s.BackendReady {
		return PlayRequest{}, apperr.ErrBackendUnavailable
	}
	if !s.Scanned {
		return PlayRequest{}, fmt.Errorf("%w: каталог еще не прочитан", apperr.ErrInvalidSelection)
	}

	entry, ok := s.Library.Selected()
	if !ok {
		return PlayRequest{}, apperr.ErrInvalidSelection
	}

	return PlayRequest{
		Entry: entry,
		Path:  track.ResolvePath(s.ScanRoot, entry),
	}, nil
}

// PlayStarted фиксирует трек после подтверждения от бэкенда
func (s *AppState) PlayStarted(req PlayRequest, label string) {
	if label == "" {
		label = req.Entry
	}
	s.NowPlaying = label
	s.NowPlayingPath = req.Path
	s.Paused = false
	s.setStatus("Воспроизведение: " + label)
}

// PlayFailed сообщает об ошибке запуска, не трогая текущий трек
func (s *AppState) PlayFailed(req PlayRequest, err error) {
	s.setError(fmt.Errorf("%w: не удалось воспроизвести %s: %w", apperr.ErrBackend, req.Entry, err))
}

// PlaybackFinished сбрасывает текущий трек, если доиграл именно он
func (s *AppState) PlaybackFinished(path string) {
	if path == "" || path != s.NowPlayingPath {
		return
	}
	s.NowPlaying = NothingPlaying
	s.NowPlayingPath = ""
	s.Paused = false
	s.setStatus("Трек завершен")
}

// Pause ставит воспроизведение на паузу
func (s *AppState) Pause(controls Controls) error {
	if err := s.checkControls(controls); err != nil {
		return err
	}

	if err := controls.Pause(); err != nil {
		err = fmt.Errorf("%w: пауза: %w", apperr.ErrBackend, err)
		s.setError(err)
		return err
	}

	s.Paused = true
	s.setStatus("Пауза")
	return nil
}

// Unpause возобновляет воспроизведение
func (s *AppState) Unpause(controls Controls) error {
	if err := s.checkControls(controls); err != nil {
		return err
	}

	if err := controls.Resume(); err != nil {
		err = fmt.Errorf("%w: возобновление: %w", apperr.ErrBackend, err)
		s.setError(err)
		return err
	}

	s.Paused = false
	s.setStatus("Воспроизведение")
	return nil
}

// Rescan перечитывает каталог и заново ставит курсор.
// При ошибке предыдущий список сохраняется.
func (s *AppState) Rescan(lister track.Lister) error {
	entries, err := lister.ListEntries(s.ScanRoot)
	if err != nil {
		err = fmt.Errorf("%w: %w", apperr.ErrScan, err)
		s.setError(err)
		return err
	}

	s.Library = selection.WithItems(entries)
	s.Scanned = true
	s.Setup()

	if len(entries) == 0 {
		s.setStatus("Каталог пуст: " + s.ScanRoot)
	} else if s.StatusIsError && errors.Is(s.lastErr, apperr.ErrScan) {
		s.setStatus("")
	}
	return nil
}

// SetError показывает ошибку в строке статуса
func (s *AppState) SetError(err error) {
	s.setError(err)
}

func (s *AppState) checkControls(controls Controls) error {
	if controls == nil || !s.BackendReady {
		s.setError(apperr.ErrBackendUnavailable)
		return apperr.ErrBackendUnavailable
	}
	return nil
}

func (s *AppState) setStatus(msg string) {
	s.Status = msg
	s.StatusIsError = false
	s.lastErr = nil
}

func (s *AppState) setError(err error) {
	s.Status = err.Error()
	s.StatusIsError = true
	s.lastErr = err
}
