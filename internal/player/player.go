// Package player содержит компоненты для управления воспроизведением аудио
package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/hazadus/go-jukebox/internal/apperr"
)

// DefaultSampleRate частота динамиков, к которой приводятся все треки
const DefaultSampleRate = 44100

// Backend управляет воспроизведением треков
type Backend interface {
	Play(path string) error
	Pause() error
	Resume() error
	Stop() error
	Close() error
	// Finished отдает путь трека, который доиграл до конца
	Finished() <-chan string
}

// ProgressReporter сообщает позицию текущего трека
type ProgressReporter interface {
	Status() (Status, bool)
}

// Status представляет текущий статус плеера
type Status struct {
	Current   time.Duration // Текущая позиция
	Total     time.Duration // Общая продолжительность
	IsPlaying bool          // Воспроизводится ли трек
}

// Player воспроизводит локальные файлы через динамики beep
type Player struct {
	finishedChan chan string

	// Внутреннее состояние
	mutex         sync.RWMutex
	sampleRate    beep.SampleRate
	isInitialized bool
	isPaused      bool
	isClosed      bool
	currentPath   string

	// Компоненты для воспроизведения
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
}

// NewPlayer создает плеер и один раз инициализирует динамики
func NewPlayer(sampleRate int) (*Player, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	p := newPlayer(beep.SampleRate(sampleRate))

	err := speaker.Init(p.sampleRate, p.sampleRate.N(time.Second/5))
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка инициализации динамиков: %w", apperr.ErrBackendUnavailable, err)
	}
	p.isInitialized = true

	return p, nil
}

func newPlayer(sampleRate beep.SampleRate) *Player {
	return &Player{
		finishedChan: make(chan string, 1),
		sampleRate:   sampleRate,
	}
}

// Finished возвращает канал с путями доигравших треков
func (p *Player) Finished() <-chan string {
	return p.finishedChan
}

// Play начинает воспроизведение файла, останавливая текущий трек
func (p *Player) Play(path string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.isClosed {
		return apperr.ErrBackendUnavailable
	}

	// Останавливаем текущее воспроизведение, если есть
	p.stopInternal()

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("ошибка открытия файла: %w", err)
	}

	streamer, format, err := decode(file, path)
	if err != nil {
		file.Close()
		return err
	}

	p.file = file
	p.streamer = streamer
	p.format = format
	p.currentPath = path

	// Приводим частоту трека к частоте динамиков
	var source beep.Streamer = streamer
	if format.SampleRate != p.sampleRate {
		source = beep.Resample(4, format.SampleRate, p.sampleRate, streamer)
	}

	// Создаем контроллер паузы
	p.ctrl = &beep.Ctrl{
		Streamer: source,
		Paused:   false,
	}
	p.isPaused = false

	// Запускаем воспроизведение
	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		// Уведомляем о завершении воспроизведения
		select {
		case p.finishedChan <- path:
		default:
		}
	})))

	return nil
}

// Pause приостанавливает воспроизведение
func (p *Player) Pause() error {
	return p.setPaused(true)
}

// Resume возобновляет воспроизведение
func (p *Player) Resume() error {
	return p.setPaused(false)
}

func (p *Player) setPaused(paused bool) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.ctrl == nil {
		return apperr.ErrNothingLoaded
	}

	speaker.Lock()
	p.isPaused = paused
	p.ctrl.Paused = paused
	speaker.Unlock()

	return nil
}

// Stop останавливает воспроизведение
func (p *Player) Stop() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.stopInternal()
	return nil
}

// stopInternal внутренний метод остановки (должен вызываться под мьютексом)
func (p *Player) stopInternal() {
	if p.ctrl != nil {
		speaker.Clear()
		p.ctrl = nil
	}

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}

	if p.file != nil {
		p.file.Close()
		p.file = nil
	}

	p.currentPath = ""
	p.isPaused = false
}

// Close закрывает плеер и освобождает динамики
func (p *Player) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.isClosed {
		return nil
	}
	p.isClosed = true

	p.stopInternal()
	if p.isInitialized {
		speaker.Close()
		p.isInitialized = false
	}
	close(p.finishedChan)
	return nil
}

// IsPlaying возвращает true, если трек воспроизводится
func (p *Player) IsPlaying() bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.ctrl != nil && !p.isPaused
}

// CurrentPath возвращает путь текущего трека
func (p *Player) CurrentPath() string {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.currentPath
}

// Status возвращает позицию и длительность текущего трека
func (p *Player) Status() (Status, bool) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	if p.streamer == nil || p.ctrl == nil {
		return Status{}, false
	}

	speaker.Lock()
	status := Status{
		Current:   p.format.SampleRate.D(p.streamer.Position()),
		Total:     p.format.SampleRate.D(p.streamer.Len()),
		IsPlaying: !p.isPaused,
	}
	speaker.Unlock()

	return status, true
}

// decode выбирает декодер по расширению файла
func decode(file *os.File, path string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err := mp3.Decode(file)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("ошибка декодирования MP3: %w", err)
		}
		return streamer, format, nil

	case ".wav":
		streamer, format, err := wav.Decode(file)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("ошибка декодирования WAV: %w", err)
		}
		return streamer, format, nil

	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s", apperr.ErrUnsupportedFormat, filepath.Ext(path))
	}
}
