// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hazadus/go-jukebox/internal/apperr"
)

// DefaultConfigPath путь к файлу конфигурации по умолчанию
const DefaultConfigPath = "~/.jukebox.yaml"

// MusicDirEnv переменная окружения, переопределяющая каталог с музыкой
const MusicDirEnv = "JUKEBOX_MUSIC_DIR"

// Config структура для хранения конфигурации приложения
type Config struct {
	MusicDir        string        `yaml:"music_dir"`
	Extensions      []string      `yaml:"extensions"`
	TickRate        time.Duration `yaml:"tick_rate"`
	RescanDelay     time.Duration `yaml:"rescan_delay"`
	RescanInterval  time.Duration `yaml:"rescan_interval"`
	DormantInterval time.Duration `yaml:"dormant_interval"`
	WatchDir        bool          `yaml:"watch_dir"`
	WatchDebounce   time.Duration `yaml:"watch_debounce"`
	SampleRate      int           `yaml:"sample_rate"`
	LogFile         string        `yaml:"log_file"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		MusicDir:        "~/Music",
		TickRate:        250 * time.Millisecond,
		RescanDelay:     500 * time.Millisecond,
		DormantInterval: time.Hour,
		WatchDebounce:   300 * time.Millisecond,
		SampleRate:      44100,
	}
}

// LoadConfig загружает конфигурацию приложения из указанного файла.
// Если файла нет, используются значения по умолчанию.
func LoadConfig(filePath string) (*Config, error) {
	path, err := ExpandPath(filePath)
	if err != nil {
		return nil, err
	}

	config := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Работаем без файла
	case err != nil:
		return nil, fmt.Errorf("ошибка чтения конфигурации %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", apperr.ErrInvalidConfig, path, err)
		}
	}

	if dir := os.Getenv(MusicDirEnv); dir != "" {
		config.MusicDir = dir
	}

	if err := config.expandPaths(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if strings.TrimSpace(c.MusicDir) == "" {
		return fmt.Errorf("%w: music_dir не задан", apperr.ErrInvalidConfig)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate должен быть больше нуля", apperr.ErrInvalidConfig)
	}

	durations := map[string]time.Duration{
		"rescan_delay":     c.RescanDelay,
		"rescan_interval":  c.RescanInterval,
		"dormant_interval": c.DormantInterval,
		"watch_debounce":   c.WatchDebounce,
	}
	for name, value := range durations {
		if value < 0 {
			return fmt.Errorf("%w: %s не может быть отрицательным (%v)", apperr.ErrInvalidConfig, name, value)
		}
	}

	if c.SampleRate < 0 {
		return fmt.Errorf("%w: sample_rate не может быть отрицательным", apperr.ErrInvalidConfig)
	}

	return nil
}

// ExpandPath раскрывает тильду в начале пути
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return strings.Replace(path, "~", home, 1), nil
}

func (c *Config) expandPaths() error {
	var err error
	if c.MusicDir, err = ExpandPath(c.MusicDir); err != nil {
		return err
	}
	if c.LogFile, err = ExpandPath(c.LogFile); err != nil {
		return err
	}
	return nil
}
