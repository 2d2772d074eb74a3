// Package selection содержит список с курсором и циклической навигацией
package selection

import "github.com/hazadus/go-jukebox/internal/apperr"

// List хранит упорядоченные элементы и необязательный курсор.
// Нулевое значение является пустым списком без выбора.
type List[T any] struct {
	items     []T
	cursor    int
	hasCursor bool
}

// WithItems создает список из элементов без выбранной позиции
func WithItems[T any](items []T) *List[T] {
	return &List[T]{items: items}
}

// Len возвращает количество элементов
func (l *List[T]) Len() int {
	return len(l.items)
}

// Items возвращает элементы в порядке отображения. Срез не должен изменяться вызывающим кодом.
func (l *List[T]) Items() []T {
	return l.items
}

// Cursor возвращает индекс выбранного элемента
func (l *List[T]) Cursor() (int, bool) {
	return l.cursor, l.hasCursor
}

// Selected возвращает выбранный элемент
func (l *List[T]) Selected() (T, bool) {
	var zero T
	if !l.hasCursor {
		return zero, false
	}
	return l.items[l.cursor], true
}

// Advance перемещает курсор вперед; с последнего элемента переходит на первый
func (l *List[T]) Advance() error {
	if len(l.items) == 0 {
		return apperr.ErrEmptyList
	}

	switch {
	case !l.hasCursor:
		l.cursor = 0
	case l.cursor >= len(l.items)-1:
		l.cursor = 0
	default:
		l.cursor++
	}
	l.hasCursor = true
	return nil
}

// Retreat перемещает курсор назад; с первого элемента переходит на последний
func (l *List[T]) Retreat() error {
	if len(l.items) == 0 {
		return apperr.ErrEmptyList
	}

	switch {
	case !l.hasCursor:
		l.cursor = 0
	case l.cursor == 0:
		l.cursor = len(l.items) - 1
	default:
		l.cursor--
	}
	l.hasCursor = true
	return nil
}
