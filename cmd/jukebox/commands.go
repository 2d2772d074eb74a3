package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-jukebox/internal/config"
)

// rootFlags значения флагов, переопределяющие конфигурацию
type rootFlags struct {
	musicDir       string
	rescanInterval time.Duration
	watch          bool
	logFile        string
}

// createRootCommand создает корневую команду с настроенными подкомандами
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jukebox",
		Short: "Terminal music player for a local directory",
		Long:  `A terminal user interface that lists audio files from a directory and plays them.`,
		Args:  cobra.NoArgs,
		// Ошибки печатает main вместе с подсказкой
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.loadConfig(cmd)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.runSession(ctx)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.configPath, "config", config.DefaultConfigPath, "path to the YAML config file")
	flags.StringVarP(&app.flags.musicDir, "dir", "d", "", "directory with audio files (default ~/Music)")
	flags.DurationVar(&app.flags.rescanInterval, "rescan-interval", 0, "rescan the directory periodically, e.g. 30s")
	flags.BoolVarP(&app.flags.watch, "watch", "w", false, "rescan when files in the directory change")
	flags.StringVar(&app.flags.logFile, "log-file", "", "write debug log to this file")

	rootCmd.AddCommand(app.createListCommand())

	return rootCmd
}

// loadConfig читает файл конфигурации и применяет явно заданные флаги
func (app *Application) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(app.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		if cfg.MusicDir, err = config.ExpandPath(app.flags.musicDir); err != nil {
			return err
		}
	}
	if flags.Changed("rescan-interval") {
		cfg.RescanInterval = app.flags.rescanInterval
	}
	if flags.Changed("watch") {
		cfg.WatchDir = app.flags.watch
	}
	if flags.Changed("log-file") {
		if cfg.LogFile, err = config.ExpandPath(app.flags.logFile); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	app.Config = cfg
	return nil
}
