package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/hazadus/go-jukebox/internal/apperr"
	"github.com/hazadus/go-jukebox/internal/config"
)

// Application хранит конфигурацию и параметры запуска
type Application struct {
	Config     *config.Config
	configPath string
	flags      rootFlags

	// isTerminal проверяет, подключен ли дескриптор к терминалу
	isTerminal func(fd int) bool
}

// NewApplication создает приложение с конфигурацией по умолчанию
func NewApplication() *Application {
	return &Application{
		Config:     config.Default(),
		configPath: config.DefaultConfigPath,
		isTerminal: term.IsTerminal,
	}
}

func main() {
	app := NewApplication()
	rootCmd := app.createRootCommand(context.Background())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, apperr.Format(err))
		os.Exit(1)
	}
}
