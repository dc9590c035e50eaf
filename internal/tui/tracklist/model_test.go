package tracklist

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

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

	mux := http.NewServeMux()
	mux.HandleFunc("GET /tracks", func(w http.ResponseWriter, _ *http.Request) {
		tracks := api.TrackList{
			Items: []api.Track{
				{ID: 1, Artist: "Test Artist 1", Title: "Test Track 1", Genre: "Ambient", Duration: 180},
				{ID: 2, Artist: "Test Artist 2", Title: "Test Track 2", Genre: "Lo-Fi", Duration: 240},
			},
			Total: 2,
		}
		_ = json.NewEncoder(w).Encode(tracks)
	})
	server := httptest.NewServer(mux)
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

func TestNewModel(t *testing.T) {
	manager := newTestManager(t)
	model := NewModel(manager)

	if model == nil {
		t.Fatal("NewModel вернула nil")
	}

	// Каталог еще не загружен: список пуст
	if len(model.list.Items()) != 0 {
		t.Fatalf("Ожидался пустой список, получено %d элементов", len(model.list.Items()))
	}
}

func TestRefreshAfterCatalogLoad(t *testing.T) {
	manager := newTestManager(t)
	model := NewModel(manager)

	manager.LoadCatalog(context.Background(), "All")
	model.Refresh()

	if len(model.list.Items()) != 2 {
		t.Fatalf("Ожидалось 2 элемента, получено %d", len(model.list.Items()))
	}

	item, ok := model.list.Items()[0].(trackItem)
	if !ok {
		t.Fatal("Элемент списка имеет неверный тип")
	}
	if item.FilterValue() != "Test Artist 1 Test Track 1" {
		t.Errorf("Неверное значение фильтра: %q", item.FilterValue())
	}
}
