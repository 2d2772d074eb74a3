// Package track содержит доступ к каталогу с треками
package track

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Lister возвращает имена записей каталога (без рекурсии)
type Lister interface {
	ListEntries(path string) ([]string, error)
}

// DirLister читает каталог файловой системы
type DirLister struct {
	extensions map[string]struct{}
}

// NewDirLister создает lister. Если extensions пуст, возвращаются все записи каталога.
func NewDirLister(extensions []string) *DirLister {
	l := &DirLister{}
	if len(extensions) == 0 {
		return l
	}

	l.extensions = make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		l.extensions[ext] = struct{}{}
	}
	return l
}

// ListEntries возвращает имена записей каталога в порядке, в котором их отдает os.ReadDir
func (l *DirLister) ListEntries(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения каталога %s: %w", path, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !l.accepts(entry) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func (l *DirLister) accepts(entry os.DirEntry) bool {
	if len(l.extensions) == 0 {
		return true
	}
	if entry.IsDir() {
		return false
	}
	_, ok := l.extensions[strings.ToLower(filepath.Ext(entry.Name()))]
	return ok
}

// ResolvePath возвращает путь к записи внутри каталога
func ResolvePath(root, entry string) string {
	return filepath.Join(root, entry)
}
