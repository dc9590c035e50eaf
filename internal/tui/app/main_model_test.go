package app

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/hazadus/go-tuner/internal/api"
	"github.com/hazadus/go-tuner/internal/events"
	"github.com/hazadus/go-tuner/internal/playback"
	"github.com/hazadus/go-tuner/internal/session"
	"github.com/hazadus/go-tuner/internal/storage"
	"github.com/hazadus/go-tuner/internal/tui/login"
	tuiPlayer "github.com/hazadus/go-tuner/internal/tui/player"
	"github.com/hazadus/go-tuner/internal/tui/tracklist"
)

// nullOutput заменяет аудиовыход в тестах
type nullOutput struct {
	done chan struct{}
}

func (nullOutput) Play(string) error        { return nil }
func (nullOutput) Pause()                   {}
func (nullOutput) Resume()                  {}
func (nullOutput) Seek(time.Duration) error { return nil }
func (nullOutput) SetVolume(float64)        {}
func (nullOutput) Position() time.Duration  { return 0 }
func (nullOutput) Duration() time.Duration  { return 0 }
func (o nullOutput) Done() <-chan struct{}  { return o.done }
func (nullOutput) Stop()                    {}

func newTestModel(t *testing.T) *MainModel {
	t.Helper()

	server := httptest.NewServer(http.NewServeMux())
	t.Cleanup(server.Close)

	store, err := storage.NewStore(filepath.Join(t.TempDir(), "state.yaml"))
	if err != nil {
		t.Fatalf("Ошибка создания Store: %v", err)
	}

	client := api.NewClient(server.URL, server.URL)
	logger := log.New(io.Discard)
	sess := session.NewManager(client, store, logger)
	out := nullOutput{done: make(chan struct{})}
	pb := playback.NewManager(client, sess, events.NewBus(), out, store, logger)

	return NewMainModel(sess, pb, client, events.NewBus())
}

func TestMainModelRouting(t *testing.T) {
	model := newTestModel(t)

	// Без сохраненной сессии начинаем с экрана входа
	if model.currentScreen != LoginScreen {
		t.Errorf("Ожидался начальный экран LoginScreen, получен %v", model.currentScreen)
	}
	if model.tracklistModel == nil {
		t.Error("Модель каталога должна быть инициализирована")
	}
	if model.playerModel != nil {
		t.Error("Модель плеера не должна быть инициализирована изначально")
	}

	// Продолжаем без входа
	updatedModel, _ := model.Update(login.SkippedMsg{})
	model = updatedModel.(*MainModel)

	if model.currentScreen != TracklistScreen {
		t.Errorf("Ожидался экран TracklistScreen после пропуска входа, получен %v", model.currentScreen)
	}

	// Выбор трека переключает на экран плеера
	trackChosenMsg := tracklist.TrackChosenMsg{
		Track: api.Track{ID: 1, Title: "Test Track", Artist: "Test Artist", AudioPath: "media/audio/1.mp3"},
	}
	updatedModel, _ = model.Update(trackChosenMsg)
	model = updatedModel.(*MainModel)

	if model.currentScreen != PlayerScreen {
		t.Errorf("Ожидался экран PlayerScreen после выбора трека, получен %v", model.currentScreen)
	}
	if model.playerModel == nil {
		t.Error("Модель плеера должна быть инициализирована после выбора трека")
	}

	// Возврат к каталогу
	updatedModel, _ = model.Update(tuiPlayer.GoBackMsg{})
	model = updatedModel.(*MainModel)

	if model.currentScreen != TracklistScreen {
		t.Errorf("Ожидался экран TracklistScreen после возврата, получен %v", model.currentScreen)
	}
	if model.playerModel != nil {
		t.Error("Модель плеера должна быть nil после возврата")
	}

	// Глобальные горячие клавиши
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("Ожидалась команда tea.Quit после Ctrl+C")
	}
}

func TestMainModelView(t *testing.T) {
	model := newTestModel(t)

	// Экран входа
	if model.View() == "" {
		t.Error("Ожидалось непустое отображение экрана входа")
	}

	// Экран каталога
	updatedModel, _ := model.Update(login.SkippedMsg{})
	model = updatedModel.(*MainModel)
	if model.View() == "" {
		t.Error("Ожидалось непустое отображение каталога")
	}

	// Несуществующий экран
	model.currentScreen = ScreenType(999)
	if model.View() != "Неизвестный экран" {
		t.Errorf("Ожидалось 'Неизвестный экран', получено %q", model.View())
	}
}
