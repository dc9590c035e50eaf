package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-tuner/internal/tui"
)

// createTUICommand создает команду tui с привязкой к экземпляру приложения
func (app *Application) createTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch TUI (Terminal User Interface)",
		Long:  `Launch the interactive terminal interface for browsing the catalog and playing tracks.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.launchTUI()
		},
	}
}

func (app *Application) launchTUI() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Восстанавливаем последний выбранный трек без автозапуска
	app.Playback.RestoreSelection(ctx)

	// Цикл завершения треков работает, пока открыт интерфейс
	go app.Playback.Run(ctx)

	tuiApp := tui.NewApp(app.Session, app.Playback, app.Client, app.Bus)
	return tuiApp.Run()
}
