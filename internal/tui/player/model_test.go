package player

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/hazadus/go-tuner/internal/api"
	"github.com/hazadus/go-tuner/internal/events"
	"github.com/hazadus/go-tuner/internal/playback"
	"github.com/hazadus/go-tuner/internal/session"
	"github.com/hazadus/go-tuner/internal/storage"
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

func newTestManager(t *testing.T) *playback.Manager {
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

	return playback.NewManager(client, sess, events.NewBus(), out, store, logger)
}

func TestViewWithoutTrack(t *testing.T) {
	model := NewModel(newTestManager(t))

	view := model.View()
	if !strings.Contains(view, "Трек не выбран") {
		t.Errorf("Ожидалось сообщение об отсутствии трека, получено: %q", view)
	}
}

func TestKeysWithoutTrackAreSafe(t *testing.T) {
	model := NewModel(newTestManager(t))

	// Клавиши управления без выбранного трека не должны паниковать
	for _, key := range []string{" ", "n", "p", "r", "s", "f", "d", "+", "-", "left", "right"} {
		var msg tea.KeyMsg
		if key == "left" || key == "right" {
			keyType := tea.KeyLeft
			if key == "right" {
				keyType = tea.KeyRight
			}
			msg = tea.KeyMsg{Type: keyType}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		if key == " " {
			msg = tea.KeyMsg{Type: tea.KeySpace}
		}
		model.Update(msg)
	}
}

func TestGoBackKey(t *testing.T) {
	model := NewModel(newTestManager(t))

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("Ожидалась команда после нажатия esc")
	}

	if _, ok := cmd().(GoBackMsg); !ok {
		t.Error("Ожидалось сообщение GoBackMsg")
	}
}

func TestTickSchedulesNext(t *testing.T) {
	model := NewModel(newTestManager(t))

	_, cmd := model.Update(TickMsg{})
	if cmd == nil {
		t.Fatal("Ожидалась команда продолжения таймера")
	}
}
