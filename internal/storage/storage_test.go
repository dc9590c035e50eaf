package storage

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "state.yaml"))
	if err != nil {
		t.Fatalf("Ошибка создания Store: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Ошибка загрузки состояния: %v", err)
	}
	return store
}

func TestLoadMissingFile(t *testing.T) {
	store := newTestStore(t)

	if store.Token() != "" {
		t.Error("Токен должен быть пустым для нового состояния")
	}
	if store.CurrentTrackID() != 0 {
		t.Error("ID трека должен быть нулевым для нового состояния")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if err := store.SetToken("test-token-123"); err != nil {
		t.Fatalf("Ошибка сохранения токена: %v", err)
	}

	// Перечитываем файл заново
	reloaded, err := NewStore(store.path)
	if err != nil {
		t.Fatalf("Ошибка создания Store: %v", err)
	}
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Ошибка загрузки состояния: %v", err)
	}

	if reloaded.Token() != "test-token-123" {
		t.Errorf("Ожидался токен %q, получен %q", "test-token-123", reloaded.Token())
	}

	if err := reloaded.ClearToken(); err != nil {
		t.Fatalf("Ошибка удаления токена: %v", err)
	}
	if reloaded.Token() != "" {
		t.Error("Токен должен быть пустым после ClearToken")
	}
}

func TestCurrentTrackIDRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if err := store.SetCurrentTrackID(42); err != nil {
		t.Fatalf("Ошибка сохранения ID трека: %v", err)
	}

	reloaded, err := NewStore(store.path)
	if err != nil {
		t.Fatalf("Ошибка создания Store: %v", err)
	}
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Ошибка загрузки состояния: %v", err)
	}

	if reloaded.CurrentTrackID() != 42 {
		t.Errorf("Ожидался ID трека 42, получен %d", reloaded.CurrentTrackID())
	}
}

func TestVolumeRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if err := store.SetVolume(0.35); err != nil {
		t.Fatalf("Ошибка сохранения громкости: %v", err)
	}
	if store.Volume() != 0.35 {
		t.Errorf("Ожидалась громкость 0.35, получена %f", store.Volume())
	}
}
