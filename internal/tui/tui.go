// Package tui содержит компоненты текстового пользовательского интерфейса
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-tuner/internal/api"
	"github.com/hazadus/go-tuner/internal/events"
	"github.com/hazadus/go-tuner/internal/playback"
	"github.com/hazadus/go-tuner/internal/session"
	"github.com/hazadus/go-tuner/internal/tui/app"
)

// App представляет основное TUI приложение
type App struct {
	session  *session.Manager
	playback *playback.Manager
	client   *api.Client
	bus      *events.Bus
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(sess *session.Manager, pb *playback.Manager, client *api.Client, bus *events.Bus) *App {
	return &App{
		session:  sess,
		playback: pb,
		client:   client,
		bus:      bus,
	}
}

// Run запускает TUI приложение и блокируется до выхода пользователя
func (tuiApp *App) Run() error {
	model := app.NewMainModel(tuiApp.session, tuiApp.playback, tuiApp.client, tuiApp.bus)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()

	// Отписываемся от шины после завершения программы
	model.Close()

	return err
}
