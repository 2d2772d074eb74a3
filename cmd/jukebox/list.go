package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hazadus/go-jukebox/internal/apperr"
	"github.com/hazadus/go-jukebox/internal/metadata"
	"github.com/hazadus/go-jukebox/internal/track"
	"github.com/hazadus/go-jukebox/internal/utils"
)

// createListCommand создает команду list с привязкой к экземпляру приложения
func (app *Application) createListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracks in the music directory",
		Long:  `Print the entries of the music directory in the order the session shows them.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.listTracks()
		},
	}
}

func (app *Application) listTracks() error {
	root := app.Config.MusicDir
	entries, err := track.NewDirLister(app.Config.Extensions).ListEntries(root)
	if err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrScan, err)
	}

	if len(entries) == 0 {
		fmt.Printf("📂 Каталог пуст: %s\n", root)
		return nil
	}

	fmt.Printf("📂 %s\n", root)
	fmt.Printf("📚 Найдено записей: %d\n\n", len(entries))

	fmt.Printf("%-4s %s %-10s %s\n", "#", utils.PadRight("Файл", 40), "Размер", "Трек")
	fmt.Println(strings.Repeat("-", 100))

	extractor := metadata.NewExtractor()
	for i, entry := range entries {
		path := track.ResolvePath(root, entry)
		label := extractor.Label(path)
		fmt.Printf("%-4d %s %-10s %s\n", i+1, utils.PadRight(entry, 40), entrySize(path), utils.TruncateString(label, 45))
	}

	fmt.Println()
	fmt.Println("💡 Запустите 'jukebox' без аргументов, чтобы открыть плеер")
	return nil
}

// entrySize возвращает размер файла в читаемом виде
func entrySize(path string) string {
	info, err := os.Stat(path)
	switch {
	case err != nil:
		return "N/A"
	case info.IsDir():
		return "<dir>"
	default:
		return humanize.Bytes(uint64(info.Size()))
	}
}
