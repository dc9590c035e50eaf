// Package app содержит главную модель TUI, переключающую экраны
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-tuner/internal/api"
	"github.com/hazadus/go-tuner/internal/events"
	"github.com/hazadus/go-tuner/internal/playback"
	"github.com/hazadus/go-tuner/internal/session"
	"github.com/hazadus/go-tuner/internal/tui/favorites"
	"github.com/hazadus/go-tuner/internal/tui/login"
	tuiPlayer "github.com/hazadus/go-tuner/internal/tui/player"
	"github.com/hazadus/go-tuner/internal/tui/tracklist"
)

// ScreenType определяет тип текущего экрана
type ScreenType int

// Константы для типов экранов
const (
	// LoginScreen - экран входа
	LoginScreen ScreenType = iota
	// TracklistScreen - экран каталога треков
	TracklistScreen
	// PlayerScreen - экран плеера
	PlayerScreen
	// FavoritesScreen - экран избранного
	FavoritesScreen
)

// SignalReceivedMsg приходит, когда на шине появился сигнал об изменении
// избранного или дизлайков
type SignalReceivedMsg struct {
	Signal events.Signal
}

// CatalogLoadedMsg приходит после начальной загрузки каталога
type CatalogLoadedMsg struct{}

// MainModel представляет главную модель TUI
type MainModel struct {
	session  *session.Manager
	playback *playback.Manager
	client   *api.Client

	currentScreen  ScreenType
	loginModel     *login.Model
	tracklistModel *tracklist.Model
	playerModel    *tuiPlayer.Model
	favoritesModel *favorites.Model

	signals     <-chan events.Signal
	unsubscribe func()
}

// NewMainModel создает новую главную модель
func NewMainModel(sess *session.Manager, pb *playback.Manager, client *api.Client, bus *events.Bus) *MainModel {
	signals, unsubscribe := bus.Subscribe()

	// Без сохраненной сессии начинаем с экрана входа
	initialScreen := LoginScreen
	if sess.IsAuthenticated() {
		initialScreen = TracklistScreen
	}

	return &MainModel{
		session:        sess,
		playback:       pb,
		client:         client,
		currentScreen:  initialScreen,
		loginModel:     login.NewModel(sess),
		tracklistModel: tracklist.NewModel(pb),
		signals:        signals,
		unsubscribe:    unsubscribe,
	}
}

// Init инициализирует модель: грузит каталог и слушает шину сигналов
func (m *MainModel) Init() tea.Cmd {
	return tea.Batch(
		m.loginModel.Init(),
		m.loadCatalog(),
		m.waitForSignal(),
	)
}

// loadCatalog возвращает команду начальной загрузки каталога
func (m *MainModel) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		m.playback.LoadCatalog(context.Background(), "All")
		return CatalogLoadedMsg{}
	}
}

// waitForSignal возвращает команду ожидания следующего сигнала шины
func (m *MainModel) waitForSignal() tea.Cmd {
	return func() tea.Msg {
		signal, ok := <-m.signals
		if !ok {
			return nil
		}
		return SignalReceivedMsg{Signal: signal}
	}
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Глобальные горячие клавиши
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case CatalogLoadedMsg:
		m.tracklistModel.Refresh()
		return m, nil

	case SignalReceivedMsg:
		// Флаги в каталоге уже обновлены менеджером, экранам достаточно
		// перечитать свои списки
		m.tracklistModel.Refresh()
		cmds := []tea.Cmd{m.waitForSignal()}
		if m.currentScreen == FavoritesScreen && m.favoritesModel != nil {
			cmds = append(cmds, m.favoritesModel.Reload())
		}
		return m, tea.Batch(cmds...)

	case login.LoggedInMsg:
		// После входа каталог перечитывается: социальные флаги зависят от сессии
		m.currentScreen = TracklistScreen
		return m, m.loadCatalog()

	case login.SkippedMsg:
		m.currentScreen = TracklistScreen
		return m, nil

	case tracklist.TrackChosenMsg:
		m.currentScreen = PlayerScreen
		m.playback.SelectTrack(context.Background(), msg.Track)
		m.playerModel = tuiPlayer.NewModel(m.playback)
		return m, m.playerModel.Init()

	case tracklist.OpenFavoritesMsg:
		if !m.session.IsAuthenticated() {
			// Избранное доступно только после входа
			m.currentScreen = LoginScreen
			return m, nil
		}
		m.currentScreen = FavoritesScreen
		m.favoritesModel = favorites.NewModel(m.client)
		return m, m.favoritesModel.Init()

	case favorites.TrackChosenMsg:
		m.currentScreen = PlayerScreen
		m.playback.SelectTrack(context.Background(), msg.Track)
		m.playerModel = tuiPlayer.NewModel(m.playback)
		return m, m.playerModel.Init()

	case favorites.GoBackMsg:
		m.currentScreen = TracklistScreen
		m.favoritesModel = nil
		return m, nil

	case tuiPlayer.GoBackMsg:
		// Воспроизведение продолжается, меняется только экран
		m.currentScreen = TracklistScreen
		m.playerModel = nil
		return m, nil

	case tea.WindowSizeMsg:
		// Размеры окна нужны всем спискам, не только активному
		var cmds []tea.Cmd
		m.tracklistModel, cmd = m.tracklistModel.Update(msg)
		cmds = append(cmds, cmd)
		if m.favoritesModel != nil {
			m.favoritesModel, cmd = m.favoritesModel.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.playerModel != nil {
			updatedModel, playerCmd := m.playerModel.Update(msg)
			if playerModel, ok := updatedModel.(*tuiPlayer.Model); ok {
				m.playerModel = playerModel
			}
			cmds = append(cmds, playerCmd)
		}
		return m, tea.Batch(cmds...)
	}

	// Передаем сообщение активной модели
	switch m.currentScreen {
	case LoginScreen:
		m.loginModel, cmd = m.loginModel.Update(msg)

	case TracklistScreen:
		m.tracklistModel, cmd = m.tracklistModel.Update(msg)

	case PlayerScreen:
		if m.playerModel != nil {
			updatedModel, playerCmd := m.playerModel.Update(msg)
			if playerModel, ok := updatedModel.(*tuiPlayer.Model); ok {
				m.playerModel = playerModel
			}
			cmd = playerCmd
		}

	case FavoritesScreen:
		if m.favoritesModel != nil {
			m.favoritesModel, cmd = m.favoritesModel.Update(msg)
		}
	}

	return m, cmd
}

// View отображает интерфейс
func (m *MainModel) View() string {
	switch m.currentScreen {
	case LoginScreen:
		return m.loginModel.View()

	case TracklistScreen:
		return m.tracklistModel.View()

	case PlayerScreen:
		if m.playerModel != nil {
			return m.playerModel.View()
		}
		return "Ошибка: модель плеера не инициализирована"

	case FavoritesScreen:
		if m.favoritesModel != nil {
			return m.favoritesModel.View()
		}
		return "Ошибка: модель избранного не инициализирована"

	default:
		return "Неизвестный экран"
	}
}

// Close освобождает ресурсы главной модели
func (m *MainModel) Close() {
	m.unsubscribe()
}
