package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/hazadus/go-tuner/internal/api"
	"github.com/hazadus/go-tuner/internal/config"
	"github.com/hazadus/go-tuner/internal/events"
	"github.com/hazadus/go-tuner/internal/playback"
	"github.com/hazadus/go-tuner/internal/player"
	"github.com/hazadus/go-tuner/internal/session"
	"github.com/hazadus/go-tuner/internal/storage"
)

const defaultConfigPath = "~/.tuner"

// Application связывает зависимости, которые используют команды
type Application struct {
	Config   *config.Config
	Store    *storage.Store
	Client   *api.Client
	Logger   *log.Logger
	Bus      *events.Bus
	Player   *player.Player
	Session  *session.Manager
	Playback *playback.Manager
}

// newApplication собирает приложение из конфигурации
func newApplication(cfg *config.Config) (*Application, error) {
	store, err := storage.NewStore(cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла состояния: %w", err)
	}
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("ошибка загрузки состояния: %w", err)
	}

	// Громкость из конфигурации используется, пока пользователь не
	// менял ее сам: после этого действует сохраненное значение
	if store.Volume() == 0 {
		_ = store.SetVolume(cfg.Volume)
	}

	client := api.NewClient(cfg.APIURL, cfg.MediaURL)

	logger := log.New(os.Stderr)
	if os.Getenv("TUNER_DEBUG") != "" {
		logger.SetLevel(log.DebugLevel)
	}

	sess := session.NewManager(client, store, logger)
	bus := events.NewBus()
	out := player.NewPlayer()
	pb := playback.NewManager(client, sess, bus, out, store, logger)

	return &Application{
		Config:   cfg,
		Store:    store,
		Client:   client,
		Logger:   logger,
		Bus:      bus,
		Player:   out,
		Session:  sess,
		Playback: pb,
	}, nil
}

// Close освобождает ресурсы приложения
func (app *Application) Close() {
	if app.Player != nil {
		_ = app.Player.Close()
	}
}

func main() {
	cfg, err := config.LoadConfig(defaultConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	app, err := newApplication(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка инициализации: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	ctx := context.Background()

	// Проверяем сохраненную сессию до выполнения команд: протухший
	// токен удаляется, приложение продолжает работать как гость
	app.Session.ValidateStoredSession(ctx)

	rootCmd := app.createRootCommand(ctx)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
