// Package apperr содержит ошибки приложения и их представление для пользователя
package apperr

import (
	"errors"
	"fmt"
)

// Базовые ошибки приложения
var (
	ErrTerminalSetup      = errors.New("не удалось подготовить терминал")
	ErrBackendUnavailable = errors.New("аудио-бэкенд недоступен")
	ErrInvalidSelection   = errors.New("трек не выбран")
	ErrScan               = errors.New("ошибка чтения каталога")
	ErrBackend            = errors.New("ошибка аудио-бэкенда")
	ErrEmptyList          = errors.New("список пуст")
	ErrNothingLoaded      = errors.New("нет загруженного трека")
	ErrUnsupportedFormat  = errors.New("неподдерживаемый формат")
	ErrInvalidConfig      = errors.New("некорректная конфигурация")
)

// Suggestion возвращает подсказку для пользователя по ошибке
func Suggestion(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTerminalSetup):
		return "Запустите jukebox в интерактивном терминале"
	case errors.Is(err, ErrBackendUnavailable):
		return "Проверьте, что в системе есть доступное аудиоустройство"
	case errors.Is(err, ErrScan):
		return "Проверьте music_dir в ~/.jukebox.yaml или флаг --dir"
	case errors.Is(err, ErrInvalidConfig):
		return "Исправьте ~/.jukebox.yaml или передайте корректные флаги"
	case errors.Is(err, ErrUnsupportedFormat):
		return "Поддерживаются файлы mp3 и wav"
	}
	return ""
}

// Format возвращает сообщение об ошибке с подсказкой, если она есть
func Format(err error) string {
	if err == nil {
		return ""
	}

	if suggestion := Suggestion(err); suggestion != "" {
		return fmt.Sprintf("Ошибка: %s\n\nПодсказка: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Ошибка: %s", err.Error())
}
